package css

import (
	"cmp"
	"fmt"
)

// Specificity ranks selectors: ID first, then class-like, then type-like.
type Specificity struct{ ID, Class, Type int }

var (
	Zero      = Specificity{}
	TypeTier  = Specificity{Type: 1}
	ClassTier = Specificity{Class: 1}
	IDTier    = Specificity{ID: 1}
)

func (s Specificity) Add(o Specificity) Specificity {
	return Specificity{s.ID + o.ID, s.Class + o.Class, s.Type + o.Type}
}

func (s Specificity) Compare(o Specificity) int {
	if c := cmp.Compare(s.ID, o.ID); c != 0 {
		return c
	} else if c := cmp.Compare(s.Class, o.Class); c != 0 {
		return c
	}
	return cmp.Compare(s.Type, o.Type)
}

func (s Specificity) Less(o Specificity) bool { return s.Compare(o) < 0 }
func (s Specificity) String() string          { return fmt.Sprintf("(%d,%d,%d)", s.ID, s.Class, s.Type) }

func maxSpecificity(ss []Selector) Specificity {
	m := Zero
	for _, s := range ss {
		if x := s.Specificity(); m.Less(x) {
			m = x
		}
	}
	return m
}

func sumSpecificity(ss []Selector) Specificity {
	sum := Zero
	for _, s := range ss {
		sum = sum.Add(s.Specificity())
	}
	return sum
}
