package gen

import "fmt"

// Mode is the kind of artifact an identity is resolved for.
type Mode uint8

// List of modes. The order is the emission order of the artifacts of a table.
const (
	ModeTable Mode = iota
	ModeValue
	ModeRecord
	ModeDAOBase
	ModeInterface
	ModeBean
	ModeDAOChild
	ModeMethod
	endModes
)

// modeRule is the naming rule of a mode.
type modeRule struct {
	name   string
	prefix string // class name prefix
	suffix string // class name suffix
	sub    string // package sub-segment
	child  bool   // rooted at the child package
	file   bool   // produces a file
}

var modeRules = [...]modeRule{
	ModeTable:     {name: "table", suffix: "Table", file: true},
	ModeValue:     {name: "value", file: true},
	ModeRecord:    {name: "record", suffix: "Record", file: true},
	ModeDAOBase:   {name: "dao_base", prefix: "Abstract", suffix: "Dao", sub: "daos", file: true},
	ModeInterface: {name: "interface", prefix: "I", file: true},
	ModeBean:      {name: "bean", sub: "beans", child: true, file: true},
	ModeDAOChild:  {name: "dao_child", suffix: "Dao", sub: "daos", child: true, file: true},
	ModeMethod:    {name: "method"},
}

// Modes returns all the modes in emission order.
func Modes() []Mode {
	modes := make([]Mode, 0, endModes)
	for m := ModeTable; m < endModes; m++ {
		modes = append(modes, m)
	}
	return modes
}

// Valid reports if m is a known mode.
func (m Mode) Valid() bool { return m < endModes }

// String returns the name of the mode.
func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", m)
	}
	return modeRules[m].name
}

// Child reports if artifacts of the mode are generated once, under the child
// package.
func (m Mode) Child() bool { return m.Valid() && modeRules[m].child }

// File reports if the mode names a file.
func (m Mode) File() bool { return m.Valid() && modeRules[m].file }

// DAO reports if the mode names a data-access type.
func (m Mode) DAO() bool { return m == ModeDAOBase || m == ModeDAOChild }

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("daogen: invalid mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// ParseMode returns the mode with the given name.
func ParseMode(name string) (Mode, error) {
	for m := ModeTable; m < endModes; m++ {
		if modeRules[m].name == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("daogen: unknown mode %q", name)
}
