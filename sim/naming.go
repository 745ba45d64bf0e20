package sim

import (
	"strconv"
	"strings"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

// A Name is a dot separated hierarchical name such as "Comm.Mem[2]".
type Name struct {
	Tokens []NameToken
}

// NameToken is one element of a Name.
type NameToken struct {
	ElemName string
	Index    []int
}

// ParseName splits a name string into tokens. It panics on unbalanced
// brackets or non-integer indices.
func ParseName(sname string) Name {
	parts := strings.Split(sname, ".")
	name := Name{Tokens: make([]NameToken, len(parts))}

	for i, part := range parts {
		name.Tokens[i] = parseNameToken(part)
	}

	return name
}

func parseNameToken(token string) NameToken {
	depth := 0
	for _, c := range token {
		switch c {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				panic("name bracket must match")
			}
		}
	}

	if depth != 0 {
		panic("name bracket must match")
	}

	ts := strings.Split(token, "[")
	indices := make([]int, 0, len(ts)-1)

	for _, t := range ts[1:] {
		index, err := strconv.Atoi(strings.TrimSuffix(t, "]"))
		if err != nil {
			panic("name index must be integer")
		}

		indices = append(indices, index)
	}

	return NameToken{ElemName: ts[0], Index: indices}
}

// NameMustBeValid panics if the name does not follow the naming convention:
// dot separated, non-empty CamelCase elements starting with a capital letter,
// and square brackets for elements of a series.
func NameMustBeValid(name string) {
	defer func() {
		if r := recover(); r != nil {
			panic("name " + name + " is not valid: " + r.(string))
		}
	}()

	for _, token := range ParseName(name).Tokens {
		if token.ElemName == "" {
			panic("name element must not be empty")
		}

		if strings.ContainsAny(token.ElemName, "_\"'- ") {
			panic("name element must be CamelCase")
		}

		if token.ElemName[0] < 'A' || token.ElemName[0] > 'Z' {
			panic("name element must start with a capital letter")
		}
	}
}

// BuildName joins a parent name and an element name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex builds the name of the index-th element of a series.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName, elementName+"["+strconv.Itoa(index)+"]")
}
