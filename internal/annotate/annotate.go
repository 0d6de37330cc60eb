package annotate

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// issuePattern matches issue references like #EP-11: a hash, an uppercase
// project key, a dash and a number.
var issuePattern = regexp.MustCompile(`#([A-Z]+-\d+)`)

// titlePrefix marks a line as an annotation. A following line containing it
// is treated as already annotated.
const titlePrefix = "Title:"

// Resolver turns an issue identifier into a title. An empty title means the
// identifier could not be resolved and no line is inserted for it.
type Resolver func(ctx context.Context, id string) string

// Notifier surfaces per-identifier progress to the user.
type Notifier func(message string)

// Annotator inserts Title: lines beneath issue references in a document.
type Annotator struct {
	Resolve Resolver
	Notify  Notifier
}

// Result reports the outcome of a single annotation pass.
type Result struct {
	Text     string
	Changed  bool
	Tokens   int
	Inserted int
}

// Annotate scans text for issue references and inserts a "Title: ..." line
// beneath the first line containing each reference, unless the following
// line already carries one. References are processed one at a time, in the
// order they appear in the text.
func (a *Annotator) Annotate(ctx context.Context, text string) Result {
	matches := issuePattern.FindAllStringSubmatch(text, -1)
	res := Result{Text: text, Tokens: len(matches)}
	if len(matches) == 0 {
		return res
	}

	lines := strings.Split(text, "\n")
	for _, m := range matches {
		raw, id := m[0], m[1]

		title := a.Resolve(ctx, id)
		if a.Notify != nil {
			a.Notify(fmt.Sprintf("%s: %s", id, title))
		}
		if title == "" {
			continue
		}

		// Earlier inserts shift the slice, so locate the line again each
		// time: the first line from the top containing the raw reference.
		idx := -1
		for i, line := range lines {
			if strings.Contains(line, raw) {
				idx = i
				break
			}
		}
		if idx == -1 {
			continue
		}
		if idx+1 < len(lines) && strings.Contains(lines[idx+1], titlePrefix) {
			log.Debug().Str("issue", id).Int("line", idx).Msg("already annotated")
			continue
		}

		insert := titlePrefix + " " + title
		lines = append(lines[:idx+1], append([]string{insert}, lines[idx+1:]...)...)
		res.Inserted++
		log.Debug().Str("issue", id).Int("line", idx).Msg("inserted title annotation")
	}

	if res.Inserted > 0 {
		res.Text = strings.Join(lines, "\n")
		res.Changed = true
	}
	return res
}
