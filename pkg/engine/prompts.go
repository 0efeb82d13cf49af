package engine

import "fmt"

// Outbound message texts. Field numbering in prompts and the summary doubles
// as the edit-path legend (1.N personal, 2.T.N transaction).
const (
	msgGreeting = "👋 Hello! Welcome to Cyber Crime Complaint Registration Bot.\n\n" +
		"Have you suffered a *money loss* due to cyber crime?\n\n" +
		"Reply:\n1️⃣ *Yes* - Register a complaint\n2️⃣ *No* - Track existing complaint"

	msgMoneyLossRetry = "Please reply with *Yes* or *No*.\n\n" +
		"Have you suffered a money loss due to cyber crime?"

	msgTracking = "To track your complaint, please visit the official NCRP website:\n\n" +
		"🔗 https://cybercrime.gov.in\n\n" +
		"Type 'Hi' anytime to start a new complaint registration."

	msgTimeout = "Due to inactivity on the channel, your session has timed out. " +
		"Just type 'Hi' to restart your conversation."

	msgRestart = "Something went wrong. Please type 'Hi' to restart."

	promptName = "Let's register your complaint. I'll collect some information from you.\n\n" +
		"📝 *Personal Information*\n\n" +
		"Please enter your *full name*:\n" +
		"_Example: Rajesh Kumar or JEEVIKESH S or jeevikesh .S_"

	promptMobile = "Please enter your *mobile number* (10 digits):"

	promptDOB = "Please enter your *Date of Birth* (D-M-YYYY):\n" +
		"_Examples: 2-3-2001 or 02-03-2001 or 2-03-2001_"

	promptFatherName = "Please enter your *Father's Name*:"

	promptDistrict = "Please enter your *District*:"

	promptPinCode = "Please enter your *PIN Code* (6 digits):"

	promptTransactionCount = "💳 *Transaction Details*\n\n" +
		"How many *fraudulent transactions* were made?\n" +
		"_Enter a number (e.g., 2)_"

	promptTransTime = "Enter *Transaction Time*:\n" +
		"_Examples: 14:30, 2:30 PM, 02:03 pm, 2:3 PM_"

	promptTransBank = "Enter *Bank Name*:"

	promptTransAccount = "Enter *Bank Account Number*:\n" +
		"_Formats:\n• Generic: 9-18 digits (123456789012)\n• SBI: 17 digits with leading zeros\n• ICICI: 12 digits (123456789012)_"

	promptTransAmount = "Enter *Amount Debited* (in ₹):"

	promptTransID = "Enter *Transaction ID / Reference Number*:\n" +
		"_Formats:\n• Account #: 9-18 digits (123456789012)\n• SBI: 17 digits with zeros\n• UPI: Alphanumeric (1234ABCD5678EFGH)\n• Generic: TXN1234567890_"

	msgConfirmPrompt = "📋 Do you want to generate PDF or edit information?\n\n" +
		"Reply:\n*Yes* - to generate PDF\n*No* - to edit information"

	msgConfirmUpdated = "Generate PDF with updated data?\n\n" +
		"Reply:\n*Yes* - to generate PDF\n*No* - to edit more"

	msgConfirmRetry = "Please reply with *Yes* to generate PDF or *No* to edit information."

	msgEditInstructions = "✏️ *EDIT YOUR INFORMATION*\n\n" +
		"Use format: *serial_number = new_value*\n\n" +
		"*Examples of Editing:*\n" +
		"• 1.1 = JOHN SMITH\n" +
		"• 1.3 = 01-01-1995\n" +
		"• 2.1.2 = 02:03 PM\n" +
		"• 2.1.4 = 123456789012\n" +
		"• 2.1.6 = TXN1234567890\n\n" +
		"Type *'done'* when finished\n" +
		"Type *'summary'* to view all data"

	msgEditContinue = "Continue editing or type 'done' to finish.\n" +
		"Type 'summary' to review all data."

	msgEditRetryFormat = "Format: *serial_number = new_value*\n" +
		"Examples:\n• 1.1 = JOHN SMITH\n• 2.1.2 = 02:03 PM\n• 2.1.4 = 123456789012"

	msgEditFormatHelp = "❌ Invalid format!\n\n" +
		"Use: *serial_number = new_value*\n\n" +
		"*Personal Info Examples:*\n" +
		"1.1 = Rajesh Kumar\n" +
		"1.3 = 02-03-2001\n\n" +
		"*Transaction Examples:*\n" +
		"2.1.2 = 02:03 PM\n" +
		"2.1.4 = 123456789012\n" +
		"2.1.6 = TXN1234567890\n\n" +
		"Type 'done' when finished"

	msgGenerating = "✅ Generating your complaint PDF..."

	msgSuccess = "✅ *DATA COLLECTED SUCCESSFUL!*\n\n" +
		"📞 For further assistance:\n" +
		"🔗 https://cybercrime.gov.in\n\n" +
		"Thank you for using our service! Stay safe online! 🛡️\n\n" +
		"_Type 'Hi' to register a new complaint._"
)

func promptTransDate(number int) string {
	return fmt.Sprintf("📝 *Transaction #%d*\n\n"+
		"Enter *Transaction Date* (D-M-YYYY):\n"+
		"_Examples: 25-10-2024 or 2-3-2024_", number)
}

func msgDeliveryFallback(complaintID int64) string {
	return fmt.Sprintf("✅ Complaint registered with ID: %d\n\n"+
		"⚠️ PDF could not be delivered. Please contact support.", complaintID)
}

func retryPrompt(reason error, hint string) string {
	return fmt.Sprintf("❌ %s\n\n%s", reason, hint)
}
