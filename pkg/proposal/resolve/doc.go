// Package resolve replaces {token} placeholders in a parsed DOCX document.
//
// A placeholder may be split across any number of runs. The resolver
// accumulates run text until the token is complete, writes the formatted
// value into one run of the matched span (chosen by a StylePolicy), and
// removes the token's characters from the other runs, keeping any text
// before or after the token in place. Every region of the document is
// visited:
//
//  1. paragraphs of text boxes reached through their shape structure
//  2. every text box paragraph, then the top-level body paragraphs
//  3. table cells, including nested tables
//  4. paragraphs of floating (anchored) text boxes
//
// Regions whose text is empty are skipped, and a shape whose structure
// cannot be followed is recorded in the Report without aborting the pass.
// Values are formatted before any region is touched, so a value of an
// unexpected type fails the whole pass with a *FormatError and leaves the
// document unchanged.
//
// Example:
//
//	r := resolve.New(resolve.WithStylePolicy(resolve.LongestRun))
//	report, err := r.Resolve(doc, resolve.TokenMap{
//	    "{client_name}":  "Acme Ltd",
//	    "{Total amount}": 1234.5,
//	})
package resolve
