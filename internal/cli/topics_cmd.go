package cli

import (
	"fmt"
	"strings"

	"github.com/danielmeier/cramplan/internal/cli/formatter"
	"github.com/danielmeier/cramplan/internal/syllabus"
	"github.com/spf13/cobra"
)

func newTopicsCmd(app *App) *cobra.Command {
	var course string

	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List the curriculum for a course",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !syllabus.ValidCourses[course] {
				return fmt.Errorf("unknown course %q, use AA_HL, AA_SL, AI_HL or AI_SL", course)
			}

			topics := syllabus.TopicsForCourse(syllabus.Course(course))
			fmt.Println(formatter.Header(course + " Curriculum"))

			chapter := ""
			for _, topic := range topics {
				if c := chapterOf(topic.ID); c != chapter {
					chapter = c
					fmt.Printf("\n  %s\n", formatter.Bold(syllabus.ChapterNames[chapter]))
				}
				fmt.Printf("    %-8s %-42s %s %s\n",
					formatter.Dim(topic.ID),
					topic.Name,
					difficultyStars(topic.Difficulty),
					formatter.Dim(formatter.FormatHours(topic.Hours)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&course, "course", "AA_SL", "Course code (AA_HL|AA_SL|AI_HL|AI_SL)")

	return cmd
}

// chapterOf extracts the chapter digit from a topic ID like "aa_3_2".
func chapterOf(topicID string) string {
	parts := strings.Split(topicID, "_")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

func difficultyStars(d int) string {
	switch d {
	case 3:
		return formatter.StyleRed.Render("★★★")
	case 2:
		return formatter.StyleYellow.Render("★★ ")
	default:
		return formatter.StyleGreen.Render("★  ")
	}
}
