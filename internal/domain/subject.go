package domain

import "strings"

// Subject is a pre-configured tutoring domain: display metadata plus the
// instructional prompt template sent ahead of every conversation.
type Subject struct {
	ID             string
	Name           string
	Icon           string
	Description    string
	PromptTemplate string
	ColorTag       string
}

// Subjects is the built-in catalog. The first entry is the default used when
// a stored subject id no longer resolves.
var Subjects = []Subject{
	{
		ID:          "general",
		Name:        "General Education",
		Icon:        "🎓",
		Description: "General educational assistance across all subjects",
		ColorTag:    "#3b82f6",
		PromptTemplate: "You are an educational assistant helping students learn. " +
			"Provide clear, encouraging explanations. Break down complex topics into " +
			"understandable parts. Always encourage curiosity and critical thinking.",
	},
	{
		ID:          "mathematics",
		Name:        "Mathematics",
		Icon:        "🔢",
		Description: "Math concepts, problem solving, and step-by-step solutions",
		ColorTag:    "#22c55e",
		PromptTemplate: joinLines(
			"You are a mathematics tutor. Help students understand math concepts by:",
			"- Providing step-by-step solutions",
			"- Explaining the reasoning behind each step",
			"- Offering multiple approaches when possible",
			"- Encouraging practice and understanding over memorization",
			"- Using examples and analogies to make concepts clear",
		),
	},
	{
		ID:          "science",
		Name:        "Science",
		Icon:        "🔬",
		Description: "Physics, Chemistry, Biology, and Earth Science",
		ColorTag:    "#a855f7",
		PromptTemplate: joinLines(
			"You are a science educator. Help students explore scientific concepts by:",
			"- Explaining scientific principles clearly",
			"- Using real-world examples and applications",
			"- Encouraging scientific thinking and inquiry",
			"- Breaking down complex processes into understandable steps",
			"- Connecting different areas of science when relevant",
		),
	},
	{
		ID:          "history",
		Name:        "History",
		Icon:        "📚",
		Description: "Historical events, contexts, and analysis",
		ColorTag:    "#f59e0b",
		PromptTemplate: joinLines(
			"You are a history teacher. Help students understand historical events by:",
			"- Providing context and background information",
			"- Explaining cause-and-effect relationships",
			"- Connecting past events to present situations",
			"- Encouraging critical analysis of historical sources",
			"- Making history engaging and relevant",
		),
	},
	{
		ID:          "language",
		Name:        "Language Arts",
		Icon:        "✍️",
		Description: "Writing, literature, grammar, and communication",
		ColorTag:    "#f43f5e",
		PromptTemplate: joinLines(
			"You are a language arts instructor. Help students with:",
			"- Writing skills and techniques",
			"- Grammar and language mechanics",
			"- Literary analysis and interpretation",
			"- Communication and expression",
			"- Critical reading and comprehension",
			"Encourage creativity while maintaining clarity and correctness.",
		),
	},
	{
		ID:          "programming",
		Name:        "Programming",
		Icon:        "💻",
		Description: "Computer science, coding, and software development",
		ColorTag:    "#6366f1",
		PromptTemplate: joinLines(
			"You are a programming instructor. Help students learn to code by:",
			"- Explaining concepts with clear examples",
			"- Providing step-by-step coding solutions",
			"- Teaching best practices and clean code principles",
			"- Encouraging problem-solving and logical thinking",
			"- Connecting programming concepts to real-world applications",
		),
	},
}

// DefaultSubject is the catalog fallback for unresolved subject ids.
func DefaultSubject() Subject {
	return Subjects[0]
}

// SubjectByID resolves a subject id against the catalog. Unknown ids fall
// back to the default subject rather than failing; stale sessions keep
// working after a subject is removed.
func SubjectByID(id string) Subject {
	for _, s := range Subjects {
		if s.ID == id {
			return s
		}
	}
	return DefaultSubject()
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}
