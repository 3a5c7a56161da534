package kson

import (
	"fmt"
	"strings"

	goyaml "github.com/goccy/go-yaml"
)

// YAMLConfig controls YAML emission.
type YAMLConfig struct {
	Indent            int
	RetainEmbedTags   bool
	PreserveComments  bool
}

// ToYAML renders a value tree as YAML text via goccy/go-yaml, using
// yaml.MapSlice to keep object member order (goccy/go-yaml's plain
// map[string]interface{} path sorts keys, same limitation as
// encoding/json's map type) and a yaml.CommentMap keyed by YAMLPath to
// carry leading/trailing comments through when PreserveComments is set
//.
func ToYAML(v *Value, cfg YAMLConfig) (string, error) {
	iv := toYAMLInterface(v, cfg)
	opts := []goyaml.EncodeOption{}
	if cfg.Indent > 0 {
		opts = append(opts, goyaml.Indent(cfg.Indent))
	}
	if cfg.PreserveComments {
		cm := goyaml.CommentMap{}
		collectYAMLComments(v, "$", cm)
		if len(cm) > 0 {
			opts = append(opts, goyaml.WithComment(cm))
		}
	}
	out, err := goyaml.MarshalWithOptions(iv, opts...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toYAMLInterface(v *Value, cfg YAMLConfig) interface{} {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case ValueObject:
		ms := goyaml.MapSlice{}
		for _, m := range v.Object.Members {
			ms = append(ms, goyaml.MapItem{Key: m.Key, Value: toYAMLInterface(m.Value, cfg)})
		}
		return ms
	case ValueList:
		list := make([]interface{}, len(v.List))
		for i, e := range v.List {
			list[i] = toYAMLInterface(e, cfg)
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
			return toYAMLInterface(ObjectFromEmbed(v.Embed, v.Location), cfg)
		}
		return v.Embed.Content
	default:
		return nil
	}
}

// collectYAMLComments walks the value tree recording a HeadComment for each
// node's leading comments and a LineComment for its trailing comment, keyed
// by the YAMLPath goccy/go-yaml expects ("$.key[0].nested").
func collectYAMLComments(v *Value, path string, cm goyaml.CommentMap) {
	if v == nil {
		return
	}
	var comments []*goyaml.Comment
	if len(v.LeadingComments) > 0 {
		comments = append(comments, goyaml.HeadComment(v.LeadingComments...))
	}
	if len(v.TrailingComments) > 0 {
		comments = append(comments, goyaml.LineComment(strings.Join(v.TrailingComments, " ")))
	}
	if len(comments) > 0 {
		cm[path] = comments
	}
	switch v.Kind {
	case ValueObject:
		for _, m := range v.Object.Members {
			childPath := fmt.Sprintf("%s.%s", path, m.Key)
			var mComments []*goyaml.Comment
			if len(m.LeadingComments) > 0 {
				mComments = append(mComments, goyaml.HeadComment(m.LeadingComments...))
			}
			if len(m.TrailingComments) > 0 {
				mComments = append(mComments, goyaml.LineComment(strings.Join(m.TrailingComments, " ")))
			}
			if len(mComments) > 0 {
				cm[childPath] = mComments
			}
			collectYAMLComments(m.Value, childPath, cm)
		}
	case ValueList:
		for i, e := range v.List {
			collectYAMLComments(e, fmt.Sprintf("%s[%d]", path, i), cm)
		}
	}
}
