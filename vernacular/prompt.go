package vernacular

import (
	"fmt"
	"strings"

	"github.com/kbukum/flairscribe/glossary"
)

// DefaultDomain names the kind of transcript in the prompt.
const DefaultDomain = "military"

// BuildPrompt asks the model to annotate each glossary term found in chunk
// with its definition in parentheses and to return only the chunk.
func BuildPrompt(domain, chunk string, terms *glossary.Glossary) string {
	if domain == "" {
		domain = DefaultDomain
	}
	var b strings.Builder
	fmt.Fprintf(&b, "The following is a %s transcription that includes specific terms which need to be expanded with their full definitions.\n", domain)
	fmt.Fprintf(&b, "The transcription chunk is:\n\"%s\"\n\n", chunk)
	fmt.Fprintf(&b, "Here is the list of %s terms and their definitions:\n%s\n\n", domain, terms.String())
	fmt.Fprintf(&b, "Please append the %s terms in the transcription with their definitions in parentheses next to each term. ", domain)
	b.WriteString(`For example, instead of "Devil Dog", use "Devil Dog (A term for U.S. Marines)".` + "\n")
	b.WriteString("Respond with only the updated transcription chunk.")
	return b.String()
}
