package proposal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// PricingField is one priced service line of a proposal.
type PricingField struct {
	Label string `yaml:"label"`
	Key   string `yaml:"key"`
}

// TeamRole is one team position whose head count appears in the proposal.
type TeamRole struct {
	Label string `yaml:"label"`
	Key   string `yaml:"key"`
}

// SpecialField is a date-valued token such as the validity date.
type SpecialField struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Variant declares the template and tokens of one proposal type.
type Variant struct {
	Name          string         `yaml:"name"`
	Template      string         `yaml:"template"`
	PricingFields []PricingField `yaml:"pricing_fields"`
	TeamRoles     []TeamRole     `yaml:"team_roles"`
	SpecialFields []SpecialField `yaml:"special_fields"`
}

func (v Variant) clone() Variant {
	v.PricingFields = slices.Clone(v.PricingFields)
	v.TeamRoles = slices.Clone(v.TeamRoles)
	v.SpecialFields = slices.Clone(v.SpecialFields)
	return v
}

// Keys returns every token key the variant produces, without delimiters,
// in resolution order.
func (v Variant) Keys() []string {
	keys := append([]string(nil), clientKeys...)
	for _, f := range v.PricingFields {
		keys = append(keys, f.Key)
	}
	keys = append(keys, derivedPriceKeys...)
	for _, r := range v.TeamRoles {
		keys = append(keys, r.Key)
	}
	keys = append(keys, toolKeys(0)...)
	for _, f := range v.SpecialFields {
		keys = append(keys, f.Key)
	}
	return keys
}

func (v Variant) validate(e *ValidationError) {
	field := func(name string) string {
		if v.Name == "" {
			return name
		}
		return v.Name + "." + name
	}
	if strings.TrimSpace(v.Name) == "" {
		e.add("name", "variant name is required")
	}
	if strings.TrimSpace(v.Template) == "" {
		e.add(field("template"), "template file is required")
	}

	keys := v.Keys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if k == "" {
			e.add(field("keys"), "token key cannot be empty")
			continue
		}
		if seen[k] {
			e.add(field("keys"), "duplicate token key %q", k)
		}
		seen[k] = true
	}
	for _, a := range keys {
		for _, b := range keys {
			if a != "" && a != b && strings.Contains(Token(b), Token(a)) {
				e.add(field("keys"), "token %s is contained in %s", Token(a), Token(b))
			}
		}
	}
}

// Catalog is an immutable, ordered set of proposal variants.
type Catalog struct {
	variants []Variant
}

// NewCatalog validates the variants and returns a catalog holding copies of them.
func NewCatalog(variants ...Variant) (*Catalog, error) {
	c := &Catalog{variants: make([]Variant, 0, len(variants))}
	for _, v := range variants {
		c.variants = append(c.variants, v.clone())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects unnamed or duplicate variants, missing templates and
// token keys that collide with or contain one another.
func (c *Catalog) Validate() error {
	e := &ValidationError{}
	if len(c.variants) == 0 {
		e.add("variants", "catalog is empty")
	}
	names := make(map[string]bool, len(c.variants))
	for _, v := range c.variants {
		if names[v.Name] {
			e.add("name", "duplicate variant %q", v.Name)
		}
		names[v.Name] = true
		v.validate(e)
	}
	return e.err()
}

// Names lists the variant names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.variants))
	for i, v := range c.variants {
		names[i] = v.Name
	}
	return names
}

// Variants returns copies of all variants in catalog order.
func (c *Catalog) Variants() []Variant {
	out := make([]Variant, len(c.variants))
	for i, v := range c.variants {
		out[i] = v.clone()
	}
	return out
}

// Lookup finds a variant by exact name.
func (c *Catalog) Lookup(name string) (Variant, error) {
	for _, v := range c.variants {
		if v.Name == name {
			return v.clone(), nil
		}
	}
	return Variant{}, &VariantNotFoundError{Name: name}
}

type catalogFile struct {
	Variants []Variant `yaml:"variants"`
}

// LoadCatalog reads a YAML catalog of the form:
//
//	variants:
//	  - name: Make & CRM Automation
//	    template: Make & CRM Automation.docx
//	    pricing_fields:
//	      - {label: Make Automation, key: M-Price}
//	    team_roles:
//	      - {label: Project Manager, key: P1}
//	    special_fields:
//	      - {key: VDate, label: Proposal Validity Until}
func LoadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return NewCatalog(file.Variants...)
}

// LoadCatalogFile reads a YAML catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()

	c, err := LoadCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// MarshalYAML writes the catalog in the format LoadCatalog reads.
func (c *Catalog) MarshalYAML() (interface{}, error) {
	return catalogFile{Variants: c.Variants()}, nil
}

var generalTeam = []TeamRole{
	{Label: "Project Manager", Key: "P1"},
	{Label: "Frontend Developers", Key: "F1"},
	{Label: "Business Analyst", Key: "B1"},
	{Label: "AI/ML Developers", Key: "A1"},
	{Label: "UI/UX Members", Key: "U1"},
	{Label: "System Architect", Key: "S1"},
	{Label: "Backend Developers", Key: "BD1"},
	{Label: "AWS Developer", Key: "AD1"},
}

var (
	manychatPricing = PricingField{Label: "ManyChat Automation", Key: "MC-Price"}
	crmPricing      = PricingField{Label: "CRM Automations", Key: "C-Price"}
	makePricing     = PricingField{Label: "Make Automation", Key: "M-Price"}
	validityDate    = SpecialField{Key: "VDate", Label: "Proposal Validity Until"}
)

func automationVariant(name string, pricing ...PricingField) Variant {
	return Variant{
		Name:          name,
		Template:      name + ".docx",
		PricingFields: pricing,
		TeamRoles:     generalTeam,
		SpecialFields: []SpecialField{validityDate},
	}
}

// DefaultCatalog returns the built-in automation proposal variants.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		automationVariant("Manychat & CRM Automation", manychatPricing, crmPricing),
		automationVariant("Make & CRM Automation", makePricing, crmPricing),
		automationVariant("Make & Manychat Automation", manychatPricing, makePricing),
		automationVariant("Make, Manychat & CRM Automation", manychatPricing, makePricing, crmPricing),
	)
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return c
}
