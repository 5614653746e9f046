package transform

import (
	"fmt"
	"strings"
)

// Intent is the kind of rewrite requested from the provider.
type Intent string

// Built-in intents map to fixed instruction templates; IntentCustom passes
// the user's instruction verbatim.
const (
	IntentExpand    Intent = "expand"
	IntentSummarize Intent = "summarize"
	IntentPoetic    Intent = "poetic"
	IntentCustom    Intent = "custom"
)

const expandPrompt = `You're a professional writer. Expand on the following text into 2-3 cohesive paragraphs of prose while keeping the original voice and tone. Return only the expanded text without any explanations:

%s
`

const summarizePrompt = `Summarize the following note into bullet points with key takeaways. Keep technical details if present. Return only the summary without any explanations:

%s
`

const poeticPrompt = `Rewrite this text in the form of a metaphorical poem, keeping the meaning but transforming the tone. Return only the poem without any explanations:

%s
`

// maxPromptContent caps how much note text is sent upstream. Larger inputs
// are trimmed from the middle, keeping the head and tail.
const maxPromptContent = 100000

// buildPrompt renders the instruction text for an intent. instruction is
// only consulted for IntentCustom.
func buildPrompt(intent Intent, instruction, text string) (string, error) {
	text = capContent(text, maxPromptContent)
	switch intent {
	case IntentExpand:
		return fmt.Sprintf(expandPrompt, text), nil
	case IntentSummarize:
		return fmt.Sprintf(summarizePrompt, text), nil
	case IntentPoetic:
		return fmt.Sprintf(poeticPrompt, text), nil
	case IntentCustom:
		if strings.TrimSpace(instruction) == "" {
			return "", fmt.Errorf("transform: custom intent requires an instruction")
		}
		return fmt.Sprintf("%s:\n\n%s\n", instruction, text), nil
	default:
		return "", fmt.Errorf("transform: unknown intent %q", intent)
	}
}

// capContent trims oversized content from the middle.
func capContent(text string, max int) string {
	if len(text) <= max {
		return text
	}
	half := max / 2
	return text[:half] + "\n\n[...content trimmed for size...]\n\n" + text[len(text)-half:]
}
