/*
Package kvline parses single lines of whitespace-separated key=value pairs,
the format found in configuration lines, log records and header fields:

	name=Alice age=30 city="New York"

Keys consist of ASCII letters, digits and underscores. Values are either bare
(ending at the next white space) or enclosed in double quotes, in which case
they may contain white space. There are no escape sequences. White space
around keys, around '=' and around values is ignored. A key that appears
more than once keeps its first position and its last value.

The result is an ordered *pairs.Map:

	m, err := kvline.Parse(`name=Alice city="New York"`)
	if err != nil {
		// handle error
	}
	city := m.Value("city") // "New York"

Malformed input yields a *errors.ParseError carrying the kind of fault, the
character offset at which it was detected and, where relevant, the key
involved. The kinds can be tested with errors.Is:

	_, err := kvline.Parse("key=")
	if errors.Is(err, kverrors.ErrMissingValue) {
		// ...
	}

A strict Parser additionally rejects keys outside an allow-list:

	p := kvline.NewStrictParser([]string{"name", "age"}, false)
	_, err := p.Parse("NAME=Bob email=bob@example.com") // InvalidKey for "email"

Parsers are immutable and safe for concurrent use.

For the common task of filling a struct, Unmarshal maps keys onto fields
using `kv` struct tags:

	type Record struct {
		Name string `kv:"name"`
		Age  int    `kv:"age"`
	}

	var r Record
	err := kvline.Unmarshal("name=Alice age=30", &r, kvline.KnownFields())
*/
package kvline
