package fixture

import (
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// pos is where a YAML node starts.
type pos struct {
	line, col int
}

func posOf(n *yaml.Node) pos { return pos{line: n.Line, col: n.Column} }

// keyError reports a mapping key the schema does not know.
type keyError struct {
	at  pos
	key string
}

func (e *keyError) Error() string { return "unknown key " + e.key }

// checkKeys fails on the first key of the mapping n that is not a yaml
// tag of the struct v points to.
func checkKeys(n *yaml.Node, v any) error {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	t := reflect.TypeOf(v).Elem()
	known := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if tag, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ","); tag != "" {
			known[tag] = true
		}
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; !known[k.Value] {
			return &keyError{at: posOf(k), key: k.Value}
		}
	}
	return nil
}

type fileSpec struct {
	Units []unitSpec `yaml:"units"`
}

type unitSpec struct {
	Assembly   string     `yaml:"assembly"`
	Module     string     `yaml:"module"`
	Version    string     `yaml:"version"`
	Kind       string     `yaml:"kind"`
	MVID       string     `yaml:"mvid"`
	References []textSpec `yaml:"references"`
	Modules    []textSpec `yaml:"modules"`
	EntryPoint *textSpec  `yaml:"entrypoint"`
	Types      []typeSpec `yaml:"types"`

	at pos
}

func (u *unitSpec) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, u); err != nil {
		return err
	}
	type plain unitSpec
	if err := n.Decode((*plain)(u)); err != nil {
		return err
	}
	u.at = posOf(n)
	return nil
}

type typeSpec struct {
	Name       string         `yaml:"name"`
	Kind       string         `yaml:"kind"`
	Public     bool           `yaml:"public"`
	Abstract   bool           `yaml:"abstract"`
	Sealed     bool           `yaml:"sealed"`
	Static     bool           `yaml:"static"`
	Generics   []genericSpec  `yaml:"generics"`
	Base       *textSpec      `yaml:"base"`
	Interfaces []textSpec     `yaml:"interfaces"`
	Fields     []fieldSpec    `yaml:"fields"`
	Methods    []methodSpec   `yaml:"methods"`
	Properties []propertySpec `yaml:"properties"`
	Nested     []typeSpec     `yaml:"nested"`

	at pos
}

func (t *typeSpec) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, t); err != nil {
		return err
	}
	type plain typeSpec
	if err := n.Decode((*plain)(t)); err != nil {
		return err
	}
	t.at = posOf(n)
	return nil
}

// genericSpec is either a bare name or a mapping with constraints.
type genericSpec struct {
	Name        string     `yaml:"name"`
	Class       bool       `yaml:"class"`
	Struct      bool       `yaml:"struct"`
	New         bool       `yaml:"new"`
	Variance    string     `yaml:"variance"`
	Constraints []textSpec `yaml:"constraints"`

	at pos
}

func (g *genericSpec) UnmarshalYAML(n *yaml.Node) error {
	g.at = posOf(n)
	if n.Kind == yaml.ScalarNode {
		g.Name = n.Value
		return nil
	}
	if err := checkKeys(n, g); err != nil {
		return err
	}
	type plain genericSpec
	return n.Decode((*plain)(g))
}

type fieldSpec struct {
	Name     string   `yaml:"name"`
	Type     textSpec `yaml:"type"`
	Static   bool     `yaml:"static"`
	ReadOnly bool     `yaml:"readonly"`
	Value    any      `yaml:"value"`

	at pos
}

func (f *fieldSpec) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, f); err != nil {
		return err
	}
	type plain fieldSpec
	if err := n.Decode((*plain)(f)); err != nil {
		return err
	}
	f.at = posOf(n)
	return nil
}

type methodSpec struct {
	Name     string        `yaml:"name"`
	Returns  *textSpec     `yaml:"returns"`
	Static   bool          `yaml:"static"`
	Virtual  bool          `yaml:"virtual"`
	Abstract bool          `yaml:"abstract"`
	Generics []genericSpec `yaml:"generics"`
	Params   []paramSpec   `yaml:"params"`
	Locals   []paramSpec   `yaml:"locals"`
	Body     []textSpec    `yaml:"body"`

	at pos
}

func (m *methodSpec) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, m); err != nil {
		return err
	}
	type plain methodSpec
	if err := n.Decode((*plain)(m)); err != nil {
		return err
	}
	m.at = posOf(n)
	return nil
}

type paramSpec struct {
	Name string   `yaml:"name"`
	Type textSpec `yaml:"type"`
	Ref  bool     `yaml:"ref"`

	at pos
}

func (p *paramSpec) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, p); err != nil {
		return err
	}
	type plain paramSpec
	if err := n.Decode((*plain)(p)); err != nil {
		return err
	}
	p.at = posOf(n)
	return nil
}

type propertySpec struct {
	Name   string   `yaml:"name"`
	Type   textSpec `yaml:"type"`
	Getter string   `yaml:"get"`
	Setter string   `yaml:"set"`

	at pos
}

func (p *propertySpec) UnmarshalYAML(n *yaml.Node) error {
	if err := checkKeys(n, p); err != nil {
		return err
	}
	type plain propertySpec
	if err := n.Decode((*plain)(p)); err != nil {
		return err
	}
	p.at = posOf(n)
	return nil
}

// textSpec is a scalar holding a type reference, a member reference or an
// instruction.
type textSpec struct {
	text string
	at   pos
}

func (t *textSpec) UnmarshalYAML(n *yaml.Node) error {
	t.at = posOf(n)
	return n.Decode(&t.text)
}
