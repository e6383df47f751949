package render

import (
	"fmt"
	"strings"
)

// lemonbar inline formatting

func underline(color, s string) string {
	return "%{u" + color + "}" + s + "%{u-}"
}

func foreground(color, s string) string {
	return "%{F" + color + "}" + s + "%{F-}"
}

func font(index int, s string) string {
	return fmt.Sprintf("%%{T%d}%s%%{T-}", index, s)
}

// clickLeft binds mouse button 1 to command. Colons end the command in
// lemonbar's syntax and are escaped.
func clickLeft(command, s string) string {
	return "%{A1:" + strings.ReplaceAll(command, ":", `\:`) + ":}" + s + "%{A-}"
}

func offset(pixels int) string {
	return fmt.Sprintf("%%{O%d}", pixels)
}
