package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/loykin/apicall/internal/descriptor"
	"github.com/loykin/apicall/internal/resterr"
	"gopkg.in/yaml.v3"
)

// HeaderSpec is one declared header; the value may be a Go template over
// {{.args.*}}.
type HeaderSpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// QuerySpec is one declared query parameter. Rendered values are
// URL-encoded before they reach the descriptor.
type QuerySpec struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// WaitSpec configures long-running operation polling for this operation.
type WaitSpec struct {
	// Delay seeds the poll cadence (duration string, e.g. "15s").
	Delay string `yaml:"delay"`
}

// OperationSpec is the YAML document describing one remote operation.
type OperationSpec struct {
	Name     string       `yaml:"name"`
	Method   string       `yaml:"method"`
	URL      string       `yaml:"url"`
	Headers  []HeaderSpec `yaml:"headers"`
	Queries  []QuerySpec  `yaml:"queries"`
	Body     string       `yaml:"body"`
	Expected []int        `yaml:"expected"`
	// Returns: value (default), deferred, completion, none.
	Returns string `yaml:"returns"`
	// Result: typed (default), bytes, stream, none.
	Result string `yaml:"result"`
	Wait   WaitSpec `yaml:"wait"`
	// Extract maps output names to gjson paths evaluated against the final
	// response body.
	Extract map[string]string `yaml:"extract"`
}

// Operation is a loaded operation: its descriptor plus the bits the caller
// layer uses around the core (extraction paths, poll delay).
type Operation struct {
	Descriptor *descriptor.Descriptor
	Extract    map[string]string
	WaitDelay  time.Duration
}

// Load decodes an OperationSpec from r and builds the Operation.
func Load(r io.Reader) (*Operation, error) {
	dec := yaml.NewDecoder(r)
	var spec OperationSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("loader: decode operation: %w", err)
	}
	return Build(spec)
}

// LoadFile loads an Operation from a YAML file path.
func LoadFile(path string) (*Operation, error) {
	clean := filepath.Clean(path)
	// #nosec G304 -- path is provided by controlled operation listing
	f, err := os.Open(clean)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Build turns a spec into an immutable descriptor. Templated fields become
// resolvers closing over their parsed templates; the descriptor itself never
// re-parses anything at call time.
func Build(spec OperationSpec) (*Operation, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return nil, fmt.Errorf("loader: operation name is required")
	}
	method := strings.ToUpper(strings.TrimSpace(spec.Method))
	if method == "" {
		return nil, fmt.Errorf("loader: %s: method is required", name)
	}
	if strings.TrimSpace(spec.URL) == "" {
		return nil, fmt.Errorf("loader: %s: url is required", name)
	}

	urlTmpl, err := parseTemplate(name+":url", spec.URL)
	if err != nil {
		return nil, err
	}
	// Each URL part resolver renders the whole template and picks its piece;
	// a render or parse failure resolves to "".
	part := func(pick func(*url.URL) string) func(descriptor.Args) string {
		return func(args descriptor.Args) string {
			rendered, rerr := render(urlTmpl, args)
			if rerr != nil {
				return ""
			}
			u, perr := url.Parse(rendered)
			if perr != nil {
				return ""
			}
			return pick(u)
		}
	}

	d := &descriptor.Descriptor{
		Name:   name,
		Method: method,
		Scheme: part(func(u *url.URL) string { return u.Scheme }),
		Host:   part(func(u *url.URL) string { return u.Host }),
		Path:   part(func(u *url.URL) string { return u.Path }),
	}

	for _, q := range spec.Queries {
		if q.Name == "" {
			continue
		}
		tmpl, terr := parseTemplate(name+":query:"+q.Name, q.Value)
		if terr != nil {
			return nil, terr
		}
		d.Query = append(d.Query, descriptor.QueryParameter{
			Name: url.QueryEscape(q.Name),
			Value: func(args descriptor.Args) string {
				v, rerr := render(tmpl, args)
				if rerr != nil {
					return ""
				}
				return url.QueryEscape(v)
			},
		})
	}

	for _, h := range spec.Headers {
		if h.Name == "" {
			continue
		}
		tmpl, terr := parseTemplate(name+":header:"+h.Name, h.Value)
		if terr != nil {
			return nil, terr
		}
		d.Header = append(d.Header, descriptor.HeaderBinding{
			Name: h.Name,
			Value: func(args descriptor.Args) string {
				v, rerr := render(tmpl, args)
				if rerr != nil {
					return ""
				}
				return v
			},
		})
	}

	if strings.TrimSpace(spec.Body) != "" {
		tmpl, terr := parseTemplate(name+":body", spec.Body)
		if terr != nil {
			return nil, terr
		}
		d.Body = func(args descriptor.Args) any {
			v, rerr := render(tmpl, args)
			if rerr != nil {
				return nil
			}
			return json.RawMessage(v)
		}
	}

	d.Expected = spec.Expected
	if len(d.Expected) == 0 {
		d.Expected = []int{200}
	}

	d.Returns, d.Result, err = shapes(name, spec.Returns, spec.Result)
	if err != nil {
		return nil, err
	}

	d.NewErrorBody = func() any {
		m := map[string]any{}
		return &m
	}
	d.NewError = resterr.NewRequestError(name)

	op := &Operation{Descriptor: d, Extract: spec.Extract}
	if s := strings.TrimSpace(spec.Wait.Delay); s != "" {
		delay, derr := time.ParseDuration(s)
		if derr != nil {
			return nil, fmt.Errorf("loader: %s: wait.delay: %w", name, derr)
		}
		op.WaitDelay = delay
	}
	return op, nil
}

func shapes(name, returns, result string) (descriptor.ReturnShape, descriptor.BodyShape, error) {
	var rs descriptor.ReturnShape
	switch strings.ToLower(strings.TrimSpace(returns)) {
	case "", "value":
		rs = descriptor.BlockingValue
	case "deferred":
		rs = descriptor.DeferredValue
	case "completion":
		rs = descriptor.DeferredCompletion
	case "none":
		rs = descriptor.FireAndForget
	default:
		return 0, 0, fmt.Errorf("loader: %s: unknown returns shape %q", name, returns)
	}

	var bs descriptor.BodyShape
	switch strings.ToLower(strings.TrimSpace(result)) {
	case "":
		if rs == descriptor.BlockingValue || rs == descriptor.DeferredValue {
			bs = descriptor.BodyTyped
		} else {
			bs = descriptor.BodyNone
		}
	case "typed":
		bs = descriptor.BodyTyped
	case "bytes":
		bs = descriptor.BodyRawBytes
	case "stream":
		bs = descriptor.BodyRawStream
	case "none":
		bs = descriptor.BodyNone
	default:
		return 0, 0, fmt.Errorf("loader: %s: unknown result shape %q", name, result)
	}
	return rs, bs, nil
}
