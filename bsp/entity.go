// SPDX-License-Identifier: GPL-2.0-or-later
package bsp

import (
	"strings"
)

// KeyValue is one "key" "value" line of an entity.
type KeyValue struct {
	Key   string
	Value string
}

// Entity keeps its pairs in file order. Later duplicates win on lookup.
type Entity struct {
	Pairs []KeyValue
}

func (e *Entity) Property(name string) (string, bool) {
	for i := len(e.Pairs) - 1; i >= 0; i-- {
		if e.Pairs[i].Key == name {
			return e.Pairs[i].Value, true
		}
	}
	return "", false
}

func (e *Entity) Name() (string, bool) {
	return e.Property("classname")
}

// PropertyNames returns each key once, in order of first appearance.
func (e *Entity) PropertyNames() []string {
	n := []string{}
	seen := make(map[string]bool, len(e.Pairs))
	for _, p := range e.Pairs {
		if !seen[p.Key] {
			seen[p.Key] = true
			n = append(n, p.Key)
		}
	}
	return n
}

// ParseEntities splits the entities lump text. The data looks like:
//
//	{
//	"classname" "worldspawn"
//	"wad" "\valve\halflife.wad"
//	}
//	{
//	"classname" "info_player_start"
//	"origin" "0 0 36"
//	}
//
// Text outside of braces is ignored. An unbalanced closing brace or an
// unterminated quote ends parsing and returns nil.
func ParseEntities(text []byte) []*Entity {
	es := []*Entity{}
	var cur *Entity
	var pending []string
	s := string(text)
	for i := 0; i < len(s); i++ {
		switch b := s[i]; b {
		case '{':
			if cur == nil {
				cur = &Entity{}
				pending = pending[:0]
			}
		case '}':
			if cur == nil {
				// Bad input
				return nil
			}
			es = append(es, cur)
			cur = nil
		case '"':
			end := strings.IndexByte(s[i+1:], '"')
			if end == -1 {
				return nil
			}
			tok := s[i+1 : i+1+end]
			i += end + 1
			if cur == nil {
				continue
			}
			pending = append(pending, tok)
			if len(pending) == 2 {
				cur.Pairs = append(cur.Pairs, KeyValue{Key: pending[0], Value: pending[1]})
				pending = pending[:0]
			}
		case '\n':
			// a key without value does not carry over to the next line
			pending = pending[:0]
		}
	}
	return es
}
