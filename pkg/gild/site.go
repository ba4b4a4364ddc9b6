package gild

import "fmt"

// NoParam marks a site that carries no parameter index
const NoParam = -1

// Site identifies a declaration site in application code: a class, one of its
// members, or a single parameter of a member. The zero member with a parameter
// index addresses a constructor parameter.
type Site struct {
	Class      string // Class (struct) name, always set
	Member     string // Method or property name, optional
	ParamIndex int    // Parameter index, NoParam when absent
}

// Class creates a site addressing a class declaration
func Class(name string) Site {
	return Site{Class: name, ParamIndex: NoParam}
}

// Method returns a site addressing a method of the class
func (s Site) Method(name string) Site {
	return Site{Class: s.Class, Member: name, ParamIndex: NoParam}
}

// Property returns a site addressing a property (field) of the class
func (s Site) Property(name string) Site {
	return Site{Class: s.Class, Member: name, ParamIndex: NoParam}
}

// Param returns a site addressing a parameter of the member by index
func (s Site) Param(index int) Site {
	return Site{Class: s.Class, Member: s.Member, ParamIndex: index}
}

// Constructor returns a site addressing a constructor parameter by index
func (s Site) Constructor(index int) Site {
	return Site{Class: s.Class, ParamIndex: index}
}

// HasMember reports whether the site addresses a member of the class
func (s Site) HasMember() bool {
	return s.Member != ""
}

// HasParam reports whether the site addresses a parameter
func (s Site) HasParam() bool {
	return s.ParamIndex != NoParam
}

// ClassSite returns the class-level site this site belongs to
func (s Site) ClassSite() Site {
	return Site{Class: s.Class, ParamIndex: NoParam}
}

// MemberSite returns the member-level site this site belongs to. For a
// class-level or constructor-parameter site it equals ClassSite.
func (s Site) MemberSite() Site {
	return Site{Class: s.Class, Member: s.Member, ParamIndex: NoParam}
}

// Key returns a stable string form of the site, usable as a map key and in
// error messages: "Class", "Class.member", "Class.member[2]", "Class[0]".
func (s Site) Key() string {
	key := s.Class
	if s.Member != "" {
		key += "." + s.Member
	}
	if s.ParamIndex != NoParam {
		key += fmt.Sprintf("[%d]", s.ParamIndex)
	}
	return key
}

// String returns the same form as Key
func (s Site) String() string {
	return s.Key()
}

// Validate checks the structural rules for a site
func (s Site) Validate() error {
	if s.Class == "" {
		return fmt.Errorf("%w: class name cannot be empty", ErrInvalidSite)
	}
	if s.ParamIndex != NoParam && s.ParamIndex < 0 {
		return fmt.Errorf("%w: parameter index must be >= 0, got %d", ErrInvalidSite, s.ParamIndex)
	}
	return nil
}
