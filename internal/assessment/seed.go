package assessment

var defaultCatalog *Catalog

func init() {
	c, err := NewCatalog(seedDefinitions())
	if err != nil {
		panic("assessment: invalid built-in catalog: " + err.Error())
	}
	defaultCatalog = c
}

// DefaultCatalog returns the built-in sample assessments.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func seedDefinitions() []Definition {
	return []Definition{
		{
			ID:          "javascript-fundamentals",
			Title:       "JavaScript Fundamentals",
			Description: "Test your knowledge of JavaScript basics, ES6+, and modern development practices.",
			Duration:    "45 minutes",
			Difficulty:  DifficultyIntermediate,
			Skills:      []string{"JavaScript", "ES6", "DOM Manipulation"},
			Steps: []Step{
				{
					ID:    "intro",
					Kind:  KindIntro,
					Title: "JavaScript Fundamentals",
					Body: "This assessment covers **core JavaScript**, **ES6+ syntax** and " +
						"**DOM manipulation**.\n\n- Pick one answer per question\n- You can go back before finishing\n" +
						"- The assistant on the last page can answer questions about the assessment",
				},
				{
					ID:      "js-typeof-null",
					Kind:    KindQuestion,
					Body:    "What does `typeof null` evaluate to?",
					Options: []string{`"null"`, `"object"`, `"undefined"`, `"number"`},
					Answer:  1,
					Skill:   "JavaScript",
				},
				{
					ID:      "js-strict-equality",
					Kind:    KindQuestion,
					Body:    "Which expression is true?",
					Options: []string{"0 === '0'", "null === undefined", "NaN === NaN", "'a' === 'a'"},
					Answer:  3,
					Skill:   "JavaScript",
				},
				{
					ID:      "es6-const",
					Kind:    KindQuestion,
					Body:    "What does `const` guarantee about a variable?",
					Options: []string{"The value is deeply immutable", "The binding cannot be reassigned", "It is hoisted and initialised", "It is global"},
					Answer:  1,
					Skill:   "ES6",
				},
				{
					ID:      "es6-arrow-this",
					Kind:    KindQuestion,
					Body:    "How do arrow functions bind `this`?",
					Options: []string{"Dynamically, by call site", "To the global object", "Lexically, from the enclosing scope", "To the function itself"},
					Answer:  2,
					Skill:   "ES6",
				},
				{
					ID:      "dom-query",
					Kind:    KindQuestion,
					Body:    "Which method returns the first element matching a CSS selector?",
					Options: []string{"getElementsByClassName", "querySelector", "querySelectorAll", "getElementById"},
					Answer:  1,
					Skill:   "DOM Manipulation",
				},
				{
					ID:     "chat",
					Kind:   KindChat,
					Title:  "Ask the assistant",
					Prompt: "Nice work getting here! Any questions about JavaScript or this assessment before you finish?",
				},
			},
		},
		{
			ID:          "react-development",
			Title:       "React Development",
			Description: "Assess your React skills including hooks, state management, and component architecture.",
			Duration:    "60 minutes",
			Difficulty:  DifficultyAdvanced,
			Skills:      []string{"React", "Hooks", "State Management"},
			Steps: []Step{
				{
					ID:    "intro",
					Kind:  KindIntro,
					Title: "React Development",
					Body: "You'll answer questions about **components**, **hooks** and " +
						"**state management**. A short chat with the assistant follows the questions.",
				},
				{
					ID:      "react-keys",
					Kind:    KindQuestion,
					Body:    "Why should list items rendered by React have stable `key` props?",
					Options: []string{"To style them", "To let React match elements between renders", "To make them focusable", "Keys are optional and have no effect"},
					Answer:  1,
					Skill:   "React",
				},
				{
					ID:      "hooks-effect-deps",
					Kind:    KindQuestion,
					Body:    "When does `useEffect(fn, [])` run `fn`?",
					Options: []string{"On every render", "Only after the first render", "Never", "Before the first render"},
					Answer:  1,
					Skill:   "Hooks",
				},
				{
					ID:      "hooks-rules",
					Kind:    KindQuestion,
					Body:    "Where may hooks be called?",
					Options: []string{"Inside loops", "Inside conditions", "At the top level of a component or custom hook", "In class components"},
					Answer:  2,
					Skill:   "Hooks",
				},
				{
					ID:      "state-lifting",
					Kind:    KindQuestion,
					Body:    "Two sibling components need the same state. What is the usual fix?",
					Options: []string{"Duplicate the state", "Lift the state to their closest common parent", "Use a global variable", "Read it from the DOM"},
					Answer:  1,
					Skill:   "State Management",
				},
				{
					ID:     "chat",
					Kind:   KindChat,
					Title:  "Ask the assistant",
					Prompt: "Questions about hooks, state or how this assessment is scored? Ask away.",
				},
			},
		},
		{
			ID:          "python-data-analysis",
			Title:       "Data Analysis with Python",
			Description: "Evaluate your Python skills for data science and analytics.",
			Duration:    "75 minutes",
			Difficulty:  DifficultyIntermediate,
			Skills:      []string{"Python", "Pandas", "Data Analysis"},
			Steps: []Step{
				{
					ID:    "intro",
					Kind:  KindIntro,
					Title: "Data Analysis with Python",
					Body:  "Questions cover **Python** basics, **pandas** and general **data analysis** practice.",
				},
				{
					ID:      "py-list-comp",
					Kind:    KindQuestion,
					Body:    "What does `[x * 2 for x in range(3)]` produce?",
					Options: []string{"[0, 2, 4]", "[2, 4, 6]", "[0, 1, 2]", "(0, 2, 4)"},
					Answer:  0,
					Skill:   "Python",
				},
				{
					ID:      "pandas-groupby",
					Kind:    KindQuestion,
					Body:    "Which pandas call computes the mean of `value` per `group`?",
					Options: []string{"df.mean('group')", "df.groupby('group')['value'].mean()", "df.pivot('value')", "df['group'].value_counts()"},
					Answer:  1,
					Skill:   "Pandas",
				},
				{
					ID:      "pandas-missing",
					Kind:    KindQuestion,
					Body:    "Which method drops rows containing missing values?",
					Options: []string{"fillna", "isna", "dropna", "replace"},
					Answer:  2,
					Skill:   "Pandas",
				},
				{
					ID:      "analysis-median",
					Kind:    KindQuestion,
					Body:    "A dataset has a few extreme outliers. Which statistic best describes its centre?",
					Options: []string{"Mean", "Median", "Maximum", "Variance"},
					Answer:  1,
					Skill:   "Data Analysis",
				},
				{
					ID:     "chat",
					Kind:   KindChat,
					Title:  "Ask the assistant",
					Prompt: "Almost done! Ask me anything about preparing for data analysis work.",
				},
			},
		},
	}
}
