// Package proposal fills placeholder tokens in Word (DOCX) proposal templates.
//
// A proposal template is an ordinary DOCX document containing literal tokens
// such as <<Client Name>> or <<MC-Price>>. The engine resolves a value for
// every token from a Form, replaces the tokens in paragraphs and table cells
// (nested tables included), keeps the formatting of the replaced text, and
// finally removes table rows whose value cell ended up empty.
//
// # Quick Start
//
//	engine := proposal.New()
//
//	out, err := engine.Generate(ctx, proposal.Request{
//	    Variant: "Make & CRM Automation",
//	    Form: proposal.Form{
//	        ClientName: "Acme",
//	        Country:    "USA",
//	        Currency:   "USD",
//	        Prices:     map[string]int64{"M-Price": 10000},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	path, err := out.Save("proposals")
//
// # Tokens
//
// Tokens are matched literally and case-sensitively anywhere in the text of a
// paragraph, even when Word has split them over several runs. A paragraph
// containing a token is rewritten as a single run formatted like its first
// non-empty run; a paragraph without tokens is never touched. Tokens with no
// value in the map stay in the document as they are.
//
// Each Variant of the Catalog declares its template file and the pricing,
// team and date tokens it uses. The built-in catalog can be replaced by a
// YAML file, see LoadCatalog.
//
// # Row pruning
//
// After all tokens are replaced, every row with at least two cells whose
// second cell is blank is removed. A price of zero resolves to an empty
// string, so its line disappears from the pricing table.
//
// # Configuration
//
// The engine reads these environment variables:
//
//	PROPOSAL_TEMPLATE_DIR - directory holding the templates (default ".")
//	PROPOSAL_OUTPUT_DIR   - where proposals are written (default: private temp dir)
//	PROPOSAL_LOG_LEVEL    - debug, info, warn, error or off (default "info")
//	PROPOSAL_CURRENCY     - currency used when a form has none (default "USD")
//	PROPOSAL_CATALOG      - YAML variant catalog replacing the built-in one
package proposal
