package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/backmassage/cropmaster/internal/logging"
)

var bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

const bannerArt = `  ____                 __  __           _
 / ___|_ __ ___  _ __ |  \/  | __ _ ___| |_ ___ _ __
| |   | '__/ _ \| '_ \| |\/| |/ _` + "`" + ` / __| __/ _ \ '__|
| |___| | | (_) | |_) | |  | | (_| \__ \ ||  __/ |
 \____|_|  \___/| .__/|_|  |_|\__,_|___/\__\___|_|
                |_|`

// PrintBanner prints the ASCII art banner, styled when stdout is a terminal.
func PrintBanner() {
	if logging.IsTerminal(os.Stdout) {
		fmt.Fprintln(os.Stdout, bannerStyle.Render(bannerArt))
		return
	}
	fmt.Fprintln(os.Stdout, bannerArt)
}
