// Package proposal generates business proposals and contracts from DOCX
// templates.
//
// A template is an ordinary Word document containing placeholders written as
// a literal in braces, such as {client_name} or {landing page price}. Word
// often splits such a literal over several runs; the resolver in the resolve
// sub-package finds it anyway and rewrites it in place, keeping the
// formatting of the surrounding text.
//
// # Quick Start
//
// Render a template directly with a token map:
//
//	tmpl, err := proposal.PrepareFile("templates/Contract Agreement.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := tmpl.Render(resolve.TokenMap{
//	    "{client_name}": "Acme Ltd",
//	    "{date}":        time.Now(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out.Save("contract.docx")
//
// Or let a Generator pick the template, validate the input against the
// proposal type's schema and convert the result to PDF:
//
//	gen, err := proposal.NewGenerator(proposal.GetGlobalConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := gen.Generate(ctx, proposal.Request{
//	    Type:   "Digital Marketing",
//	    Values: map[string]string{"client_name": "Acme Ltd", "monthly_cost": "1200"},
//	})
//
// When no PDF backend can run, Generate returns the DOCX and records the
// conversion error in Result.Fallback.
//
// # Proposal Types
//
// Each proposal type is described by a YAML schema embedded in the package
// (see the schemas directory): its template file, its input fields and the
// amounts computed from them. Schemas in Config.SchemaDir replace built-in
// ones with the same name.
//
// # Architecture
//
//   - xml: WordprocessingML parts, paragraphs, runs, tables and text boxes
//   - resolve: the placeholder resolver and its report
//
// The main package provides:
//   - Template loading, caching and rendering (PrepareFile, Render)
//   - Proposal schemas and input validation (Registry, Schema.Tokens)
//   - PDF conversion through LibreOffice or Word (Converter)
//   - Single and batch generation (Generator, Manifest)
//   - Template inspection (Inspect)
//   - Configuration, logging and error types
package proposal
