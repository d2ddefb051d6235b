// Package syllabus holds the static curriculum dataset. Topics are immutable
// at runtime; plans reference them by ID only.
package syllabus

type Course string

const (
	CourseAAHL Course = "AA_HL"
	CourseAASL Course = "AA_SL"
	CourseAIHL Course = "AI_HL"
	CourseAISL Course = "AI_SL"
)

// ValidCourses is the canonical set of accepted course strings.
var ValidCourses = map[string]bool{
	"AA_HL": true, "AA_SL": true, "AI_HL": true, "AI_SL": true,
}

// Topic is one curriculum unit: a fixed difficulty tier (1-3, drives base XP)
// and an estimated number of hours to master.
type Topic struct {
	ID         string
	Name       string
	Courses    []Course
	Difficulty int
	Hours      float64
}

// XPForDifficulty maps difficulty tiers to base XP for a first completion.
var XPForDifficulty = map[int]int{1: 100, 2: 200, 3: 300}

// ChapterNames maps the chapter digit embedded in topic IDs to display names.
var ChapterNames = map[string]string{
	"1": "Number & Algebra",
	"2": "Functions",
	"3": "Geometry & Trigonometry",
	"4": "Statistics & Probability",
	"5": "Calculus",
}

var allCourses = []Course{CourseAAHL, CourseAASL, CourseAIHL, CourseAISL}
var aa = []Course{CourseAAHL, CourseAASL}
var aaHL = []Course{CourseAAHL}
var ai = []Course{CourseAIHL, CourseAISL}
var aiHL = []Course{CourseAIHL}

// Topics is the full curriculum in syllabus order. Scheduling consumes topics
// in exactly this order.
var Topics = []Topic{
	// Chapter 1: Number & Algebra
	{ID: "aa_1_1", Name: "Sequences & Series - Arithmetic", Courses: aa, Difficulty: 1, Hours: 2},
	{ID: "aa_1_2", Name: "Sequences & Series - Geometric", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_1_3", Name: "Sigma Notation & Infinite Series", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_1_4", Name: "Exponents & Logarithms - Laws", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_1_5", Name: "Exponents & Logarithms - Equations", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_1_6", Name: "Binomial Theorem - Expansion", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_1_7", Name: "Binomial Coefficients", Courses: aa, Difficulty: 2, Hours: 1},
	{ID: "aa_1_8", Name: "Complex Numbers - Cartesian Form", Courses: aaHL, Difficulty: 2, Hours: 2},
	{ID: "aa_1_9", Name: "Complex Numbers - Polar Form", Courses: aaHL, Difficulty: 3, Hours: 2},
	{ID: "aa_1_10", Name: "Euler Form & De Moivre's Theorem", Courses: aaHL, Difficulty: 3, Hours: 3},
	{ID: "aa_1_12", Name: "Proof by Induction", Courses: aaHL, Difficulty: 3, Hours: 3},
	{ID: "aa_1_13", Name: "Proof by Contradiction", Courses: aaHL, Difficulty: 3, Hours: 2},
	{ID: "ai_1_1", Name: "Approximation & Estimation", Courses: ai, Difficulty: 1, Hours: 1.5},
	{ID: "ai_1_2", Name: "Financial Mathematics", Courses: ai, Difficulty: 2, Hours: 3},
	{ID: "ai_1_3", Name: "Matrices & Matrix Operations", Courses: aiHL, Difficulty: 2, Hours: 3},
	{ID: "ai_1_4", Name: "Eigenvalues & Eigenvectors", Courses: aiHL, Difficulty: 3, Hours: 3},

	// Chapter 2: Functions
	{ID: "aa_2_1", Name: "Functions - Domain & Range", Courses: allCourses, Difficulty: 1, Hours: 2},
	{ID: "aa_2_2", Name: "Function Transformations", Courses: aa, Difficulty: 2, Hours: 3},
	{ID: "aa_2_3", Name: "Composite & Inverse Functions", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_2_4", Name: "Quadratic Functions", Courses: aa, Difficulty: 1, Hours: 2},
	{ID: "aa_2_5", Name: "Discriminant & Roots", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_2_6", Name: "Rational & Reciprocal Functions", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_2_7", Name: "Polynomial Functions & Factor Theorem", Courses: aaHL, Difficulty: 3, Hours: 3},
	{ID: "ai_2_1", Name: "Linear & Piecewise Models", Courses: ai, Difficulty: 1, Hours: 2},
	{ID: "ai_2_2", Name: "Exponential & Logistic Models", Courses: ai, Difficulty: 2, Hours: 2.5},

	// Chapter 3: Geometry & Trigonometry
	{ID: "aa_3_1", Name: "Radian Measure & the Unit Circle", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_3_2", Name: "Trigonometric Identities", Courses: aa, Difficulty: 3, Hours: 3},
	{ID: "aa_3_3", Name: "Trigonometric Equations", Courses: aa, Difficulty: 3, Hours: 2},
	{ID: "aa_3_4", Name: "Sine & Cosine Rules", Courses: allCourses, Difficulty: 2, Hours: 2},
	{ID: "aa_3_5", Name: "Vectors - Basics & Scalar Product", Courses: aaHL, Difficulty: 3, Hours: 3},
	{ID: "aa_3_6", Name: "Vector Equations of Lines & Planes", Courses: aaHL, Difficulty: 3, Hours: 3},
	{ID: "ai_3_1", Name: "Voronoi Diagrams", Courses: ai, Difficulty: 2, Hours: 2},
	{ID: "ai_3_2", Name: "Graph Theory & Networks", Courses: aiHL, Difficulty: 3, Hours: 3},

	// Chapter 4: Statistics & Probability
	{ID: "aa_4_1", Name: "Descriptive Statistics", Courses: allCourses, Difficulty: 1, Hours: 2},
	{ID: "aa_4_2", Name: "Probability - Basics & Venn Diagrams", Courses: allCourses, Difficulty: 1, Hours: 2},
	{ID: "aa_4_3", Name: "Conditional Probability & Independence", Courses: allCourses, Difficulty: 2, Hours: 2},
	{ID: "aa_4_4", Name: "Discrete Random Variables", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_4_5", Name: "Binomial Distribution", Courses: allCourses, Difficulty: 2, Hours: 2},
	{ID: "aa_4_6", Name: "Normal Distribution", Courses: allCourses, Difficulty: 2, Hours: 2.5},
	{ID: "ai_4_1", Name: "Correlation & Regression", Courses: ai, Difficulty: 2, Hours: 2.5},
	{ID: "ai_4_2", Name: "Chi-Squared & t-Tests", Courses: ai, Difficulty: 3, Hours: 3},

	// Chapter 5: Calculus
	{ID: "aa_5_1", Name: "Limits & the Derivative", Courses: aa, Difficulty: 2, Hours: 2},
	{ID: "aa_5_2", Name: "Differentiation Rules", Courses: aa, Difficulty: 2, Hours: 3},
	{ID: "aa_5_3", Name: "Tangents, Normals & Optimisation", Courses: aa, Difficulty: 2, Hours: 2.5},
	{ID: "aa_5_4", Name: "Integration - Antiderivatives", Courses: aa, Difficulty: 2, Hours: 3},
	{ID: "aa_5_5", Name: "Definite Integrals & Areas", Courses: aa, Difficulty: 2, Hours: 2.5},
	{ID: "aa_5_6", Name: "Differential Equations", Courses: aaHL, Difficulty: 3, Hours: 3},
	{ID: "aa_5_7", Name: "Maclaurin Series", Courses: aaHL, Difficulty: 3, Hours: 2.5},
	{ID: "ai_5_1", Name: "Trapezoidal Rule & Numerical Integration", Courses: ai, Difficulty: 2, Hours: 2},
}

// TopicsForCourse returns the curriculum subset for a course, in syllabus order.
func TopicsForCourse(course Course) []Topic {
	var out []Topic
	for _, t := range Topics {
		for _, c := range t.Courses {
			if c == course {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// TopicByID looks up a topic; ok is false for unknown IDs.
func TopicByID(id string) (Topic, bool) {
	for _, t := range Topics {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

// BaseXP returns the base XP for a topic ID, defaulting to tier-1 XP when the
// topic is unknown.
func BaseXP(topicID string) int {
	if t, ok := TopicByID(topicID); ok {
		if xp, ok := XPForDifficulty[t.Difficulty]; ok {
			return xp
		}
	}
	return XPForDifficulty[1]
}
