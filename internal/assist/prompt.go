package assist

// Task names accepted by the assist layer.
const (
	TaskScriptAnalysis   = "script_analysis"
	TaskBudgetEstimate   = "budget_estimate"
	TaskCallSheetSuggest = "call_sheet_suggest"
)

// ValidTasks enumerates the accepted assist tasks.
var ValidTasks = map[string]bool{
	TaskScriptAnalysis:   true,
	TaskBudgetEstimate:   true,
	TaskCallSheetSuggest: true,
}

// BuildTaskPrompt returns the system-style instruction for an assist task.
// The user payload is sent alongside as its own message content.
func BuildTaskPrompt(task string) string {
	switch task {
	case TaskScriptAnalysis:
		return `You are a production assistant for a film and video production company. Analyze the provided script or treatment and summarize, in plain prose: the locations it requires, the cast and crew departments involved, and any equipment or scheduling risks worth flagging. Be concise and practical.`
	case TaskBudgetEstimate:
		return `You are a production assistant for a film and video production company. Given the provided project description and any listed services or rates, outline a rough budget breakdown by department. State every assumption you make. Amounts are estimates, not quotes.`
	case TaskCallSheetSuggest:
		return `You are a production assistant for a film and video production company. Given the provided shooting day details, draft the notes section of a call sheet: schedule highlights, safety reminders and logistics the crew should know. Keep it short and direct.`
	default:
		return `You are a production assistant for a film and video production company. Answer the request below concisely.`
	}
}
