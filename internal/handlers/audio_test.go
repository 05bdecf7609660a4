package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mfcoelho/finbot-backend/internal/dto"
)

type stubTranscriberService struct {
	called bool
	data   []byte
	mime   string
	text   string
	err    error
}

func (s *stubTranscriberService) Transcribe(ctx context.Context, data []byte, mimeType string) (string, error) {
	s.called = true
	s.data = data
	s.mime = mimeType
	return s.text, s.err
}

func audioRequest(t *testing.T, field string, payload []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, "note.ogg")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/audio", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestTranscribeSuccess(t *testing.T) {
	trSvc := &stubTranscriberService{text: "gastei 50 de uber"}
	resp := &stubResponseHandler{}
	h := NewAudioHandlers(&Deps{ResponseHandler: resp, TranscriberSvc: trSvc})

	rr := httptest.NewRecorder()
	h.Transcribe(rr, audioRequest(t, "audio", []byte("fake-ogg-bytes")))

	if !trSvc.called {
		t.Fatal("expected transcriber to be called")
	}
	if string(trSvc.data) != "fake-ogg-bytes" {
		t.Fatalf("payload mismatch: %q", trSvc.data)
	}
	out, ok := resp.writeSuccessData.(dto.TranscriptionResponse)
	if !ok || out.Text != "gastei 50 de uber" || out.Error != "" {
		t.Fatalf("unexpected payload: %+v", resp.writeSuccessData)
	}
}

func TestTranscribeMissingFile(t *testing.T) {
	trSvc := &stubTranscriberService{}
	resp := &stubResponseHandler{}
	h := NewAudioHandlers(&Deps{ResponseHandler: resp, TranscriberSvc: trSvc})

	rr := httptest.NewRecorder()
	h.Transcribe(rr, audioRequest(t, "wrong-field", []byte("x")))

	if trSvc.called {
		t.Fatal("transcriber must not run without a file")
	}
	if !resp.handleErrorCalled {
		t.Fatal("expected validation error")
	}
}

// A failing transcription answers with an error payload, never a crash or
// an HTTP failure.
func TestTranscribeFailureDegrades(t *testing.T) {
	trSvc := &stubTranscriberService{err: errors.New("model unavailable")}
	resp := &stubResponseHandler{}
	h := NewAudioHandlers(&Deps{ResponseHandler: resp, TranscriberSvc: trSvc})

	rr := httptest.NewRecorder()
	h.Transcribe(rr, audioRequest(t, "audio", []byte("x")))

	if resp.handleErrorCalled {
		t.Fatal("transcription failure must not map to an HTTP error")
	}
	out, ok := resp.writeSuccessData.(dto.TranscriptionResponse)
	if !ok || out.Error == "" || out.Text != "" {
		t.Fatalf("expected error payload, got %+v", resp.writeSuccessData)
	}
}
