// Package tui provides the terminal dashboard of deployctl.
//
// The dashboard is a Bubble Tea program with three tabs: the creation form, the
// list of deployments and the Proxmox node resources. A progress modal follows
// each accepted creation.
//
// # Architecture
//
// The TUI follows a Model-View-Controller (MVC) pattern:
//
//   - Model (internal/tui/model/): dashboard state, the creation form and the
//     commands that talk to the backend
//   - View (internal/tui/view/): pure rendering of the model, including overlays
//   - Controller (internal/tui/controller/): message dispatch, key handling and
//     the program lifecycle
//
// Shared building blocks live in internal/tui/components/ (header, tabs, cards,
// status bar) and internal/tui/design/ (colors and styles).
//
// # Message Flow
//
//  1. Commands run backend calls off the update loop and return messages
//  2. The controller applies each message to the model
//  3. The view renders the updated model
//
// List responses carry a store token. A response older than the newest request
// is dropped, so a slow poll can never overwrite fresher data.
//
// # Keyboard Navigation
//
//   - 1/2/3, Tab/Shift+Tab: switch tabs
//   - j/k or arrows: move between fields or deployments
//   - o: open the application, c: copy its URL, r: restart
//   - l: provisioning logs, d: delete (asks for confirmation)
//   - Ctrl+R/F5: refresh, L: activity log, ?: help
//   - q/Ctrl+C: quit (q is ignored while typing in a text field)
//
// # Usage Example
//
//	p := controller.NewProgram(model.TUIConfig{
//	    Config: settings,
//	    API:    api.New(settings.API.BaseURL),
//	}, logging.InitForTUI(logging.LevelInfo))
//
//	// Run the TUI (blocks until user quits)
//	if _, err := p.Run(); err != nil {
//	    return err
//	}
package tui
