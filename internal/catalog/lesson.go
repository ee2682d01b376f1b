package catalog

// Category groups lessons by what they teach.
type Category string

const (
	CategoryGrammar      Category = "Grammar"
	CategoryVocabulary   Category = "Vocabulary"
	CategoryConversation Category = "Conversation"
	CategoryCulture      Category = "Culture"
	CategoryAdvanced     Category = "Advanced"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryGrammar,
		CategoryVocabulary,
		CategoryConversation,
		CategoryCulture,
		CategoryAdvanced,
	}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Level is a CEFR level.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
)

// AllLevels returns all levels from beginner to upper intermediate.
func AllLevels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2}
}

// Valid reports whether l is a known level.
func (l Level) Valid() bool {
	for _, known := range AllLevels() {
		if l == known {
			return true
		}
	}
	return false
}

// Lesson is one unit of content plus its quiz. JSON names match the
// persisted and generated lesson format.
type Lesson struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	GermanTitle string     `json:"germanTitle"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Level       Level      `json:"level"`
	Content     []Section  `json:"content"`
	Exercises   []Exercise `json:"exercises"`
}

// Section is a titled block of explanation with example phrases.
type Section struct {
	Section  string    `json:"section"`
	Text     string    `json:"text"`
	Examples []Example `json:"examples"`
}

// Example pairs a German phrase with its Vietnamese translation.
type Example struct {
	De string `json:"de"`
	Vi string `json:"vi"`
}

// Exercise is a single multiple-choice question.
type Exercise struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// IsCorrect reports whether answer is the exercise's correct option.
func (e Exercise) IsCorrect(answer string) bool {
	return answer == e.CorrectAnswer
}

// HasOption reports whether option is one of the exercise's choices.
func (e Exercise) HasOption(option string) bool {
	for _, o := range e.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Exercise returns the exercise with the given id.
func (l Lesson) Exercise(id string) (Exercise, bool) {
	for _, e := range l.Exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

// Clone returns a deep copy so callers can't alias catalog slices.
func (l Lesson) Clone() Lesson {
	out := l
	out.Content = make([]Section, len(l.Content))
	for i, s := range l.Content {
		s.Examples = append([]Example(nil), s.Examples...)
		out.Content[i] = s
	}
	out.Exercises = make([]Exercise, len(l.Exercises))
	for i, e := range l.Exercises {
		e.Options = append([]string(nil), e.Options...)
		out.Exercises[i] = e
	}
	return out
}
