package notifier

import "strings"

const (
	DefaultStageTemplate   = "Olá {name}, o vídeo \"{video}\" está aguardando você: {status}."
	DefaultGeneralTemplate = "O vídeo \"{video}\" mudou de status: {status}."
)

// Render substitutes {key} placeholders in a message template. Unknown
// placeholders are left untouched.
func Render(template string, vars map[string]string) string {
	out := template
	for key, value := range vars {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}
