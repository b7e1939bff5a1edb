package arguments

// Flags are the boolean options that change how jobs are run.
type Flags struct {
	// InputsAreCommands is set when no command template was given, each
	// input is run as a command of its own.
	InputsAreCommands bool
	Pipe              bool
	// UsesShell runs commands through a shell, cleared by --no-shell.
	UsesShell bool
	Quiet     bool
	Verbose   bool
}

// DefaultFlags returns the flags in effect before any options are read.
func DefaultFlags() Flags {
	return Flags{UsesShell: true}
}

// Mode is how the grammar interprets the next argument.
type Mode int

const (
	Arguments Mode = iota // options
	Command               // command template words
	Inputs                // literal input values
	Files                 // paths of files holding input values
)

func (m Mode) String() string {
	switch m {
	case Arguments:
		return "arguments"
	case Command:
		return "command"
	case Inputs:
		return "inputs"
	case Files:
		return "files"
	default:
		return "unknown"
	}
}

// Separators that switch the grammar into input modes.
const (
	NewInputList  = ":::"
	SameInputList = ":::+"
	NewFileList   = "::::"
	SameFileList  = "::::+"
)
