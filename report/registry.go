package report

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"
)

// A simple registry of all known story templates.
type StoryEntry struct {
	Name, Description string
	Template          *template.Template
}

var storyRegistry = map[string]StoryEntry{}

var storyFuncs = template.FuncMap{
	"commas": commas,
	"pct":    func(f float64) string { return fmt.Sprintf("%.1f%%", f*100.0) },
}

// HandleStory registers a template; it panics on a bad template, as it's called from init.
func HandleStory(name, description, text string) {
	storyRegistry[name] = StoryEntry{
		Name:        name,
		Description: description,
		Template:    template.Must(template.New(name).Funcs(storyFuncs).Parse(text)),
	}
}

// LoadStory registers a template read from a file, replacing any existing one of that name.
func LoadStory(name, filename string) error {
	b, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	tmpl, err := template.New(name).Funcs(storyFuncs).Parse(string(b))
	if err != nil {
		return fmt.Errorf("story template %s: %v", filename, err)
	}
	storyRegistry[name] = StoryEntry{Name: name, Description: filename, Template: tmpl}
	return nil
}

func ListStories() []StoryEntry {
	out := []StoryEntry{}

	keys := []string{}
	for k := range storyRegistry {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		out = append(out, storyRegistry[k])
	}
	return out
}

// RenderStory renders the whole story into memory; nothing comes back unless the template
// ran to completion.
func RenderStory(name string, ctx StoryContext) ([]byte, error) {
	entry, exists := storyRegistry[name]
	if !exists {
		return nil, fmt.Errorf("story '%s' not known", name)
	}
	var buf bytes.Buffer
	if err := entry.Template.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("story '%s': %v", name, err)
	}
	return buf.Bytes(), nil
}

// commas formats a non-negative count the English way: 12345 -> "12,345".
func commas(n int) string {
	if n < 0 {
		return "-" + commas(-n)
	}
	s := fmt.Sprintf("%d", n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
