package dispatch

import (
	"strings"

	"github.com/loykin/apicall/internal/descriptor"
)

// buildURL assembles the absolute request URL from the descriptor's
// scheme/host/path resolvers and its query bindings, in declared order.
// Query values come out of their resolvers already encoded.
func buildURL(desc *descriptor.Descriptor, args descriptor.Args) string {
	var b strings.Builder

	if scheme := desc.Scheme(args); scheme != "" {
		b.WriteString(scheme)
		b.WriteString("://")
	}
	b.WriteString(strings.TrimSuffix(desc.Host(args), "/"))

	if path := desc.Path(args); path != "" {
		if !strings.HasPrefix(path, "/") {
			b.WriteByte('/')
		}
		b.WriteString(path)
	}

	sep := byte('?')
	for _, q := range desc.Query {
		b.WriteByte(sep)
		b.WriteString(q.Name)
		b.WriteByte('=')
		b.WriteString(q.Value(args))
		sep = '&'
	}

	return b.String()
}
