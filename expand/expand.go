// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package expand

import "strings"

// expansionStack tracks the variable names currently being expanded. It
// exists only for the duration of one Expand call and is the data behind
// cycle detection: re-entering a name that is already on the stack is a
// circular reference.
type expansionStack struct {
	names []string
	// first maps a name to its position in names, so a cycle chain can be
	// reported from the point of first entry.
	first map[string]int
}

func newExpansionStack() *expansionStack {
	return &expansionStack{first: make(map[string]int)}
}

// chain returns the cycle chain for name if name is already on the stack.
// The chain runs from the first occurrence of name through the current top
// and closes with name itself, so the first and last elements are equal.
func (s *expansionStack) chain(name string) ([]string, bool) {
	pos, on := s.first[name]
	if !on {
		return nil, false
	}
	chain := make([]string, 0, len(s.names)-pos+1)
	chain = append(chain, s.names[pos:]...)
	chain = append(chain, name)
	return chain, true
}

func (s *expansionStack) push(name string) {
	s.first[name] = len(s.names)
	s.names = append(s.names, name)
}

func (s *expansionStack) pop() {
	top := s.names[len(s.names)-1]
	s.names = s.names[:len(s.names)-1]
	delete(s.first, top)
}

// frame is one in-progress value expansion. The root frame holds the
// caller's text; every other frame holds the value of the variable named
// by the parent's pending reference.
type frame struct {
	text string
	// start and end delimit the span in the parent frame's text that the
	// finished expansion of this frame replaces.
	start int
	end   int
}

// Expand substitutes every ${VAR} and $VAR reference in text using the
// given mapping and returns the fully expanded result.
//
// Values are expanded inside out: a value that itself contains references
// is fully expanded before it is substituted, and after each substitution
// the enclosing text is rescanned from the beginning. Curly references are
// resolved before bare ones, left to right.
//
// Expand returns a *VariableNotFoundError when a referenced name has no
// mapping entry and a *CircularReferenceError when expansion re-enters a
// name that is still being expanded. A lone $ that does not start a
// reference is left untouched.
func Expand(text string, env map[string]string) (string, error) {
	stack := newExpansionStack()
	frames := []*frame{{text: text}}

	for {
		top := frames[len(frames)-1]
		ref, ok := nextReference(top.text)
		if !ok {
			if len(frames) == 1 {
				return finalize(top.text)
			}
			// The frame's value is fully expanded. Splice it into the
			// parent at the reference's span and resume scanning the
			// parent from the start.
			frames = frames[:len(frames)-1]
			stack.pop()
			parent := frames[len(frames)-1]
			parent.text = parent.text[:top.start] + top.text + parent.text[top.end:]
			continue
		}

		if chain, on := stack.chain(ref.name); on {
			return "", &CircularReferenceError{Chain: chain}
		}
		value, found := env[ref.name]
		if !found {
			return "", &VariableNotFoundError{Name: ref.name}
		}
		stack.push(ref.name)
		frames = append(frames, &frame{text: value, start: ref.start, end: ref.end})
	}
}

// finalize rejects text that still contains the opening of a curly
// reference after both reference forms are exhausted. Such text has a
// malformed or unbalanced brace (e.g. "${" with no closing brace), which
// is reported as a lookup that could not proceed rather than passed
// through silently.
func finalize(text string) (string, error) {
	i := strings.Index(text, "${")
	if i < 0 {
		return text, nil
	}
	fragment := text[i+2:]
	if j := strings.IndexAny(fragment, "{}"); j >= 0 {
		fragment = fragment[:j]
	}
	return "", &VariableNotFoundError{Name: fragment}
}
