package render

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bryanchriswhite/i3windows/internal/window"
)

// GroupCount is the number of workspace groups a selector partitions into
const GroupCount = 3

// ErrNonNumericWorkspace is returned when a group selector meets a workspace
// name that is not an integer
var ErrNonNumericWorkspace = errors.New("workspace name is not numeric")

// InGroup reports whether workspace belongs to group, i.e. (n-1) mod 3 == group
func InGroup(workspace string, group int) (bool, error) {
	n, err := strconv.Atoi(workspace)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrNonNumericWorkspace, workspace)
	}
	return floorMod(n-1, GroupCount) == group, nil
}

// floorMod keeps the result in [0, m) for negative n
func floorMod(n, m int) int {
	return ((n % m) + m) % m
}

// Select returns the windows on visible workspaces, restricted to group when
// it is non-nil, stably sorted by workspace name. Names compare as strings,
// so "10" sorts before "2".
func Select(snap *window.Snapshot, group *int) ([]window.Window, error) {
	visible := snap.VisibleWorkspaces()

	selected := make([]window.Window, 0, len(snap.Windows))
	for _, w := range snap.Windows {
		if !visible[w.Workspace] {
			continue
		}
		if group != nil {
			ok, err := InGroup(w.Workspace, *group)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		selected = append(selected, w)
	}

	slices.SortStableFunc(selected, func(a, b window.Window) int {
		return strings.Compare(a.Workspace, b.Workspace)
	})
	return selected, nil
}
