// Package match pairs local course folders with remote courses.
//
// The heuristic is deliberately simple: a folder matches a course when its
// name contains the course code, or when at least two significant words of
// the course name overlap with words of the folder name. Pairing is
// first-match-wins in remote enumeration order; there is no scoring.
package match

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bianoble/canvas-sync/internal/canvas"
	"github.com/bianoble/canvas-sync/internal/vault"
)

const (
	// minWordLen is the exclusive lower bound on significant word length.
	minWordLen = 3
	// minOverlap is how many significant words must overlap.
	minOverlap = 2
)

var wordSep = regexp.MustCompile(`[\s-]+`)

// Matches reports whether folderName denotes course.
func Matches(course canvas.Course, folderName string) bool {
	folder := strings.ToLower(folderName)
	code := strings.ToLower(course.CourseCode)

	if strings.Contains(folder, code) {
		return true
	}

	courseWords := splitWords(strings.ToLower(course.Name))
	folderWords := splitWords(folder)

	count := 0
	for _, word := range courseWords {
		if utf8.RuneCountInString(word) <= minWordLen {
			continue
		}
		for _, fw := range folderWords {
			if strings.Contains(fw, word) || strings.Contains(word, fw) {
				count++
				break
			}
		}
	}
	return count >= minOverlap
}

// splitWords splits on runs of whitespace and hyphens. Leading or trailing
// separators yield empty words, which are kept.
func splitWords(s string) []string {
	return wordSep.Split(s, -1)
}

// Find returns the first course in courses that matches folderName.
func Find(courses []canvas.Course, folderName string) (canvas.Course, bool) {
	for _, c := range courses {
		if Matches(c, folderName) {
			return c, true
		}
	}
	return canvas.Course{}, false
}

// Pair is a folder and the course chosen for it.
type Pair struct {
	Folder vault.CourseFolder
	Course canvas.Course
}

// PairAll matches every folder against courses. Folders without a match are
// returned separately, in input order.
func PairAll(folders []vault.CourseFolder, courses []canvas.Course) (pairs []Pair, unmatched []vault.CourseFolder) {
	for _, f := range folders {
		c, ok := Find(courses, f.Name)
		if !ok {
			unmatched = append(unmatched, f)
			continue
		}
		pairs = append(pairs, Pair{Folder: f, Course: c})
	}
	return pairs, unmatched
}
