package templates

// defaults are the built-in templates materialized on first use.
var defaults = map[string]Template{
	"meeting": {
		Name:        "meeting",
		Title:       "Meeting Notes",
		Description: "Template for recording meeting notes with agenda and action items.",
		Content: `# {{title}}

## Meeting Details
- **Date:** {{date}}
- **Time:**
- **Location:**
- **Attendees:**

## Agenda
1.
2.
3.

## Notes

## Action Items
- [ ]
- [ ]
- [ ]

## Next Steps

`,
	},
	"journal": {
		Name:        "journal",
		Title:       "Daily Journal",
		Description: "Template for daily journaling with prompts.",
		Content: `# {{title}} - {{date}}

## How I'm feeling today

## Achievements
-

## Challenges
-

## Gratitude
-

## Tomorrow's Focus
-

`,
	},
	"code-snippet": {
		Name:        "code-snippet",
		Title:       "Code Snippet",
		Description: "Template for saving and documenting code snippets.",
		Content: `# {{title}}

## Purpose
<!-- What does this code do? -->

## Language
<!-- Programming language -->

## Dependencies
<!-- Any required libraries or frameworks -->

## Code
` + "```" + `
// Your code here
` + "```" + `

## Usage Example
` + "```" + `
// Example of how to use the code
` + "```" + `

## Notes
<!-- Any additional information or context -->

`,
	},
	"event": {
		Name:        "event",
		Title:       "Event Planning",
		Description: "Template for planning and organizing events.",
		Content: `# {{title}}

## Event Details
- **Date:** {{date}}
- **Time:**
- **Location:**

## Description

## Agenda/Schedule
-

## Participants
-

## Resources Needed
-

## Notes

`,
	},
	"project": {
		Name:        "project",
		Title:       "Project Outline",
		Description: "Template for outlining and tracking projects.",
		Content: `# {{title}}

## Project Overview

## Objectives
-

## Timeline
- Start Date: {{date}}
- End Date:

## Milestones
- [ ]
- [ ]
- [ ]

## Resources
-

## Notes

`,
	},
}
