package view

// Preview returns the fixed sample scorecard used by the preview page. The
// values are already formatted and are written verbatim.
func Preview() []Binding {
	return []Binding{
		{KeywordScore, "75%"},
		{ExperienceScore, "80%"},
		{SkillsScore, "70%"},
		{EducationCheck, "100%"},
		{FormatCheck, "90%"},
		{Achievements, "5"},
		{MisspelledWords, "None"},
		{GrammaticalErrors, "2"},
		{DiversityMentions, "3"},
		{FinalScore, "82%"},
	}
}

// RenderPreview writes the sample into the underscore-named elements of target.
func RenderPreview(target Target) error {
	return Apply(target, Underscored, Preview())
}
