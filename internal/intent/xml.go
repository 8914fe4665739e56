package intent

import "strings"

// ContextXML renders the <intent_context> handshake document returned
// by the Context Injector (§6). All textual fields are XML-escaped.
func ContextXML(in *Intent, instructions string) string {
	var b strings.Builder
	b.WriteString("<intent_context>\n")
	b.WriteString("  <id>" + escapeXML(in.ID) + "</id>")
	b.WriteString("<name>" + escapeXML(in.Name) + "</name>")
	b.WriteString("<status>" + escapeXML(string(in.Status)) + "</status>\n")

	b.WriteString("  <owned_scope>")
	for _, p := range in.OwnedScope {
		b.WriteString("<path>" + escapeXML(p) + "</path>")
	}
	b.WriteString("</owned_scope>\n")

	b.WriteString("  <constraints>")
	for _, c := range in.Constraints {
		b.WriteString("<rule>" + escapeXML(c) + "</rule>")
	}
	b.WriteString("</constraints>\n")

	b.WriteString("  <acceptance_criteria>")
	for _, c := range in.AcceptanceCriteria {
		b.WriteString("<criterion>" + escapeXML(c) + "</criterion>")
	}
	b.WriteString("</acceptance_criteria>\n")

	b.WriteString("  <instructions>" + escapeXML(instructions) + "</instructions>\n")
	b.WriteString("</intent_context>")
	return b.String()
}

// escapeXML escapes the five characters that are significant in XML
// text content and attribute values: & < > " '.
func escapeXML(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(s)
}

// DefaultInstructions is the boilerplate text injected into every
// handshake document, telling the agent how to proceed now that an
// intent is active.
func DefaultInstructions(in *Intent) string {
	return "You are now working under intent " + in.ID + " (\"" + in.Name + "\"). " +
		"Only modify files within the owned scope listed above. " +
		"Honor every constraint. Call tools normally — the mediation layer " +
		"will authorize each write against this intent automatically."
}
