package window

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/bryanchriswhite/i3windows/internal/logger"
	"go.i3wm.org/i3/v4"
)

// socketAtom is the root window property i3 publishes its IPC socket under
const socketAtom = "I3_SOCKET_PATH"

var installHookOnce sync.Once

// installSocketPathHook makes the i3 client look up its socket via $I3SOCK,
// then the X11 root window, and only then fall back to running
// `i3 --get-socketpath`.
func installSocketPathHook() {
	installHookOnce.Do(func() {
		fallback := i3.SocketPathHook
		i3.SocketPathHook = func() (string, error) {
			return resolveSocketPath(os.Getenv, x11SocketPath, fallback)
		}
	})
}

func resolveSocketPath(getenv func(string) string, fromX11, fallback func() (string, error)) (string, error) {
	if path := getenv("I3SOCK"); path != "" {
		return path, nil
	}

	log := logger.WithComponent("i3")
	path, err := fromX11()
	if err == nil && path != "" {
		return path, nil
	}
	log.Debug().Err(err).Msg("X11 socket lookup failed, asking i3")

	return fallback()
}

// x11SocketPath reads I3_SOCKET_PATH from the root window of the default screen
func x11SocketPath() (string, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return "", fmt.Errorf("failed to connect to X server: %w", err)
	}
	defer conn.Close()

	root := xproto.Setup(conn).DefaultScreen(conn).Root

	atomReply, err := xproto.InternAtom(conn, true, uint16(len(socketAtom)), socketAtom).Reply()
	if err != nil {
		return "", fmt.Errorf("failed to intern %s: %w", socketAtom, err)
	}
	if atomReply.Atom == xproto.AtomNone {
		return "", fmt.Errorf("%s is not set", socketAtom)
	}

	reply, err := xproto.GetProperty(
		conn,
		false,
		root,
		atomReply.Atom,
		xproto.GetPropertyTypeAny,
		0,
		1024,
	).Reply()
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", socketAtom, err)
	}
	if reply.ValueLen == 0 {
		return "", fmt.Errorf("empty property %s", socketAtom)
	}

	return strings.TrimRight(string(reply.Value), "\x00"), nil
}
