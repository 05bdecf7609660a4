package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mfcoelho/finbot-backend/internal/dto"
	"github.com/mfcoelho/finbot-backend/internal/models"
)

// Reply copy lives here so the state machine reads as control flow only.

const paymentOptions = "💳 *How did you pay?*\n\n" +
	"1️⃣  *Pix*\n" +
	"2️⃣  *Debit*\n" +
	"3️⃣  *Credit*\n\n" +
	"👉 _Reply with the number or the name._"

const installmentPrompt = "💳 *CREDIT CARD SELECTED*\n" +
	"━━━━━━━━━━━━━━━━━━\n\n" +
	"🔄 *Was this purchase split into installments?*\n\n" +
	"🔹 Reply with the *number of installments* (e.g. `3`)\n" +
	"🔹 If you paid in full, reply *1*\n\n" +
	"🕒 _Waiting for your answer..._"

const invalidInstallmentReply = "❌ Please reply with just the number of installments (e.g. 3)."

const cancelReply = "❌ *Operation Cancelled*\n\n" +
	"Everything was cleared! You can send a new transaction. 😊"

const noAmountReply = "🤔 I couldn't find an amount in that message. Could you send it again?"

const persistFailedReply = "😔 Something went wrong while saving your transaction. Please send it again."

const summaryFailedReply = "⚠️ Couldn't build your summary right now."

func paymentPrompt(draft models.Draft) string {
	return fmt.Sprintf("✨ *Expense Captured!* ✨\n\n"+
		"💰 *Amount:* `R$ %.2f`\n"+
		"📂 *Category:* _%s_\n"+
		"🏷️ *Subcat:* _%s_\n\n"+
		"━━━━━━━━━━━━━━━━━━\n"+
		"%s",
		draft.Amount, draft.Category, draft.Subcategory, paymentOptions)
}

func successReply(draft models.Draft) string {
	emoji, title, amountEmoji := "💸", "EXPENSE CAPTURED", "💵"
	if draft.Kind == models.KindIncome {
		emoji, title, amountEmoji = "📥", "INCOME RECORDED", "💰"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n\n", emoji, title)
	fmt.Fprintf(&b, "%s *Total:* R$ %.2f\n", amountEmoji, draft.Amount)

	if draft.Installments > 1 && draft.Kind == models.KindExpense {
		perInstallment := draft.Amount / float64(draft.Installments)
		fmt.Fprintf(&b, "💳 *Installments:* %dx of R$ %.2f\n", draft.Installments, perInstallment)
	}

	fmt.Fprintf(&b, "📂 *Category:* %s\n", draft.Category)
	fmt.Fprintf(&b, "🏷️ *Subcategory:* %s\n", draft.Subcategory)
	fmt.Fprintf(&b, "🏦 *Method:* %s\n", draft.PaymentMethod)
	fmt.Fprintf(&b, "📝 *Description:* %s\n\n", draft.Description)
	b.WriteString("🚀 _Ledger updated!_")

	return b.String()
}

func summaryReply(month, year int, summary dto.MonthSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 *SUMMARY FOR %d/%d*\n\n", month, year)
	fmt.Fprintf(&b, "💰 *Total:* R$ %.2f\n\n", summary.Total)
	b.WriteString("📂 *Categories:*\n")

	type entry struct {
		name  string
		value float64
	}
	entries := make([]entry, 0, len(summary.Categories))
	for name, value := range summary.Categories {
		entries = append(entries, entry{name, value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].value != entries[j].value {
			return entries[i].value > entries[j].value
		}
		return entries[i].name < entries[j].name
	})

	for _, e := range entries {
		fmt.Fprintf(&b, "• %s: R$ %.2f\n", e.name, e.value)
	}

	return b.String()
}
