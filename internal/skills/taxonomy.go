package skills

// Taxonomy groups the fixed keyword lists used to detect skills in free text.
// Detection is case-insensitive and word-boundary based, so "java" does not
// match inside "javascript".
type Taxonomy struct {
	Technical []string
	Finance   []string
	Design    []string
}

// Default returns the taxonomy used in production. Tests may build a smaller
// one to keep fixtures short.
func Default() Taxonomy {
	return Taxonomy{
		Technical: []string{
			"php", "python", "java", "javascript", "typescript", "html", "css",
			"sql", "mysql", "postgresql", "oracle", "mongodb",
			"react", "angular", "vue", "node", "express", "laravel", "django",
			"flask", "spring", "hibernate",
			"git", "docker", "kubernetes", "aws", "azure", "gcp",
			"linux", "windows", "unix",
			"rest", "graphql", "api", "uml", "merise",
			"scrum", "agile", "devops", "ci/cd",
			"go", "rust", "c++", "c#", "kotlin", "swift", "flutter",
		},
		Finance: []string{
			"finance", "banking", "economics", "accounting", "audit",
			"credit", "investment", "portfolio", "risk", "compliance",
			"regulation", "ifrs", "sales", "negotiation", "consulting",
			"insurance", "wealth", "savings",
		},
		Design: []string{
			"photoshop", "illustrator", "indesign", "figma", "sketch",
			"adobe", "ui", "ux", "branding", "typography", "illustration",
			"wireframe", "prototyping",
		},
	}
}

// All returns every keyword in the taxonomy, technical first.
func (t Taxonomy) All() []string {
	out := make([]string, 0, len(t.Technical)+len(t.Finance)+len(t.Design))
	out = append(out, t.Technical...)
	out = append(out, t.Finance...)
	out = append(out, t.Design...)
	return out
}
