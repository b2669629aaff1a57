package cli

const statusTemplate = `
=== Sync Status ===

Client ID: {{.ClientID}}
{{- if .Rooms}}
{{range .Rooms}}
Room:       {{.Name}}
Cursor:     {{.EndCursor}}
Pending:    {{.Pending}}
{{- if .Synced}}
State:      synced
{{- else}}
State:      handshake
{{- end}}
{{- if .Paused}}
Polling:    paused
{{- end}}
{{end}}
{{- else}}
No open rooms
{{end}}`
