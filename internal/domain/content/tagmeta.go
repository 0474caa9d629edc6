package content

// TagMeta 是静态注册表里的标签元数据
type TagMeta struct {
	Name        string
	Category    Category
	Icon        string
	Level       Difficulty
	RelatedTags []string
	Aliases     []string
}

// LookupTagMeta 先查 slug 本身，再查别名
func LookupTagMeta(slug string) (TagMeta, bool) {
	if m, ok := tagRegistry[slug]; ok {
		return m, true
	}
	if canonical, ok := tagAliases[slug]; ok {
		m, ok := tagRegistry[canonical]
		return m, ok
	}
	return TagMeta{}, false
}

var tagRegistry = map[string]TagMeta{
	"linear-algebra": {
		Name:        "Linear Algebra",
		Category:    CategoryMathematics,
		Icon:        "📐",
		Level:       DifficultyIntermediate,
		RelatedTags: []string{"calculus", "machine-learning", "statistics"},
	},
	"calculus": {
		Name:        "Calculus",
		Category:    CategoryMathematics,
		Icon:        "∫",
		Level:       DifficultyIntermediate,
		RelatedTags: []string{"linear-algebra", "statistics"},
		Aliases:     []string{"kalkulus"},
	},
	"statistics": {
		Name:        "Statistics",
		Category:    CategoryMathematics,
		Icon:        "📊",
		Level:       DifficultyBeginner,
		RelatedTags: []string{"machine-learning", "calculus"},
		Aliases:     []string{"statistika"},
	},
	"machine-learning": {
		Name:        "Machine Learning",
		Category:    CategoryComputerScience,
		Icon:        "🤖",
		Level:       DifficultyAdvanced,
		RelatedTags: []string{"python", "linear-algebra", "statistics"},
		Aliases:     []string{"ml"},
	},
	"algorithms": {
		Name:        "Algorithms",
		Category:    CategoryComputerScience,
		Icon:        "🧮",
		Level:       DifficultyIntermediate,
		RelatedTags: []string{"data-structures", "cpp"},
		Aliases:     []string{"algoritma"},
	},
	"data-structures": {
		Name:        "Data Structures",
		Category:    CategoryComputerScience,
		Icon:        "🌲",
		Level:       DifficultyIntermediate,
		RelatedTags: []string{"algorithms"},
		Aliases:     []string{"struktur-data"},
	},
	"python": {
		Name:        "Python",
		Category:    CategoryProgramming,
		Icon:        "🐍",
		Level:       DifficultyBeginner,
		RelatedTags: []string{"machine-learning", "algorithms"},
	},
	"javascript": {
		Name:        "JavaScript",
		Category:    CategoryProgramming,
		Icon:        "🟨",
		Level:       DifficultyBeginner,
		RelatedTags: []string{"typescript", "web-development"},
		Aliases:     []string{"js"},
	},
	"typescript": {
		Name:        "TypeScript",
		Category:    CategoryProgramming,
		Icon:        "🟦",
		Level:       DifficultyIntermediate,
		RelatedTags: []string{"javascript", "web-development"},
		Aliases:     []string{"ts"},
	},
	"cpp": {
		Name:        "C++",
		Category:    CategoryProgramming,
		Icon:        "⚙️",
		Level:       DifficultyAdvanced,
		RelatedTags: []string{"algorithms", "data-structures"},
		Aliases:     []string{"c-plus-plus"},
	},
	"go": {
		Name:        "Go",
		Category:    CategoryProgramming,
		Icon:        "🐹",
		Level:       DifficultyIntermediate,
		RelatedTags: []string{"algorithms"},
		Aliases:     []string{"golang"},
	},
	"web-development": {
		Name:        "Web Development",
		Category:    CategoryProgramming,
		Icon:        "🌐",
		Level:       DifficultyBeginner,
		RelatedTags: []string{"javascript", "typescript"},
		Aliases:     []string{"web"},
	},
	"git": {
		Name:        "Git",
		Category:    CategoryTools,
		Icon:        "🔀",
		Level:       DifficultyBeginner,
		RelatedTags: []string{"linux"},
	},
	"docker": {
		Name:        "Docker",
		Category:    CategoryTools,
		Icon:        "🐳",
		Level:       DifficultyIntermediate,
		RelatedTags: []string{"linux"},
	},
	"linux": {
		Name:        "Linux",
		Category:    CategoryTools,
		Icon:        "🐧",
		Level:       DifficultyBeginner,
		RelatedTags: []string{"git", "docker"},
	},
}

// tagAliases 由注册表反向生成
var tagAliases = func() map[string]string {
	out := make(map[string]string)
	for slug, meta := range tagRegistry {
		for _, a := range meta.Aliases {
			out[a] = slug
		}
	}
	return out
}()
