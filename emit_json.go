package kson

import (
	"strings"

	gojson "github.com/goccy/go-json"
)

// JSONConfig controls JSON emission.
type JSONConfig struct {
	Indent          string // "" for compact output
	RetainEmbedTags bool   // emit embeds via the object isomorphism instead of dropping tag/metadata
}

// orderedObject preserves object member order through goccy/go-json
// marshaling, since encoding/json's map-based MarshalJSON would otherwise
// sort keys alphabetically and collapse duplicate keys. go-json calls
// MarshalJSON on any type that implements json.Marshaler, including nested
// values reached through interface{} fields, so building the document as a
// tree of orderedObject/[]interface{}/scalars before handing it to Marshal
// keeps source order end to end.
type orderedObject struct {
	keys   []string
	values []interface{}
}

func (o *orderedObject) set(key string, val interface{}) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, val)
}

func (o *orderedObject) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		kb, err := gojson.Marshal(k)
		if err != nil {
			return nil, err
		}
		b.Write(kb)
		b.WriteByte(':')
		vb, err := gojson.Marshal(o.values[i])
		if err != nil {
			return nil, err
		}
		b.Write(vb)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// ToJSON renders a value tree as JSON text via goccy/go-json.
// Comments have no JSON representation and are dropped; embeds are encoded
// through the object isomorphism when RetainEmbedTags is set,
// or as a bare content string otherwise.
func ToJSON(v *Value, cfg JSONConfig) (string, error) {
	iv := toJSONInterface(v, cfg)
	var out []byte
	var err error
	if cfg.Indent != "" {
		out, err = gojson.MarshalIndent(iv, "", cfg.Indent)
	} else {
		out, err = gojson.Marshal(iv)
	}
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toJSONInterface(v *Value, cfg JSONConfig) interface{} {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case ValueObject:
		o := &orderedObject{}
		for _, m := range v.Object.Members {
			o.set(m.Key, toJSONInterface(m.Value, cfg))
		}
		return o
	case ValueList:
		list := make([]interface{}, len(v.List))
		for i, e := range v.List {
			list[i] = toJSONInterface(e, cfg)
		}
		return list
	case ValueString:
		return v.Str
	case ValueNumber:
		if v.Num.Kind == NumberInteger {
			return v.Num.Int
		}
		return v.Num.Decimal
	case ValueBool:
		return v.Bool
	case ValueNull, ValueError:
		return nil
	case ValueEmbed:
		if cfg.RetainEmbedTags {
			return toJSONInterface(ObjectFromEmbed(v.Embed, v.Location), cfg)
		}
		return v.Embed.Content
	default:
		return nil
	}
}
