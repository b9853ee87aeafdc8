package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"deployctl/internal/deploy"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format for CLI commands
type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

// ParseOutputFormat accepts the values of the --output flag.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return f, nil
	case "":
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s (use table, json or yaml)", s)
	}
}

// PrinterOptions contains options for rendering command results
type PrinterOptions struct {
	Format OutputFormat
	Quiet  bool
	Out    io.Writer
	Now    func() time.Time
}

// Printer renders backend payloads for the terminal.
type Printer struct {
	options PrinterOptions
}

// NewPrinter creates a printer writing to options.Out, or stdout when unset.
func NewPrinter(options PrinterOptions) *Printer {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Format == "" {
		options.Format = OutputFormatTable
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Printer{options: options}
}

// Format is the output format in use.
func (p *Printer) Format() OutputFormat {
	return p.options.Format
}

// structured writes v as JSON or YAML. It reports false for table output.
func (p *Printer) structured(v interface{}) (bool, error) {
	switch p.options.Format {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return true, fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Fprintln(p.options.Out, string(data))
		return true, nil
	case OutputFormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, fmt.Errorf("failed to convert to YAML: %w", err)
		}
		fmt.Fprint(p.options.Out, string(data))
		return true, nil
	case OutputFormatTable:
		return false, nil
	default:
		return true, fmt.Errorf("unsupported output format: %s", p.options.Format)
	}
}

func (p *Printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.options.Out)
	t.SetStyle(table.StyleRounded)
	return t
}

func header(columns ...string) table.Row {
	row := make(table.Row, len(columns))
	for i, col := range columns {
		row[i] = text.FgHiCyan.Sprint(strings.ToUpper(col))
	}
	return row
}

// PrintDeployments renders the list newest first.
func (p *Printer) PrintDeployments(list []deploy.Deployment) error {
	deploy.SortNewestFirst(list)
	if done, err := p.structured(deploy.DeploymentList{Deployments: list, Total: len(list)}); done {
		return err
	}

	if len(list) == 0 {
		fmt.Fprintln(p.options.Out, text.FgYellow.Sprint(deploy.MsgNoDeployments))
		return nil
	}

	t := p.newTable()
	t.AppendHeader(header("id", "name", "type", "framework", "status", "resources", "ip", "created"))
	for _, d := range list {
		t.AppendRow(table.Row{
			d.ID,
			truncate(d.Name, 30),
			text.FgCyan.Sprint(d.Type.Display()),
			d.Framework,
			formatStatus(d.Status),
			formatResources(d.Resources),
			orDash(d.Proxmox.IP),
			deploy.FormatTimestamp(d.CreatedAt, p.options.Now(), nil),
		})
	}
	t.Render()

	counts := deploy.Count(list)
	fmt.Fprintf(p.options.Out, "\n%s %v déploiements · %d actifs · %d en attente · %d échoués\n",
		text.FgHiBlue.Sprint("Total:"),
		text.FgHiWhite.Sprint(counts.Total),
		counts.Running, counts.Pending, counts.Failed)
	return nil
}

// PrintDeployment renders one deployment as property/value rows.
func (p *Printer) PrintDeployment(d deploy.Deployment) error {
	if done, err := p.structured(d); done {
		return err
	}

	now := p.options.Now()
	rows := [][2]interface{}{
		{"id", d.ID},
		{"name", d.Name},
		{"type", text.FgCyan.Sprint(d.Type.Display())},
		{"framework", d.Framework},
		{"github_url", d.GithubURL},
		{"status", formatStatus(d.Status)},
		{"resources", formatResources(d.Resources)},
		{"ip", orDash(d.Proxmox.IP)},
		{"url", orDash(d.Address())},
		{"node", orDash(d.Proxmox.Node)},
		{"created_at", deploy.FormatTimestamp(d.CreatedAt, now, nil)},
		{"deployed_at", deploy.FormatTimestamp(d.DeployedAt, now, nil)},
	}
	if d.Proxmox.ID != nil {
		rows = append(rows, [2]interface{}{"vmid", *d.Proxmox.ID})
	}
	if d.ErrorMessage != "" {
		rows = append(rows, [2]interface{}{"error", text.FgRed.Sprint(d.ErrorMessage)})
	}
	var actions []string
	for _, a := range deploy.ActionsFor(d) {
		actions = append(actions, a.Label())
	}
	rows = append(rows, [2]interface{}{"actions", strings.Join(actions, ", ")})

	t := p.newTable()
	t.AppendHeader(header("property", "value"))
	for _, r := range rows {
		t.AppendRow(table.Row{text.FgYellow.Sprint(r[0]), r[1]})
	}
	t.Render()
	return nil
}

// PrintCreated reports an accepted creation.
func (p *Printer) PrintCreated(resp deploy.CreateResponse) error {
	if done, err := p.structured(resp); done {
		return err
	}
	if p.options.Quiet {
		fmt.Fprintln(p.options.Out, resp.Deployment.ID)
		return nil
	}
	fmt.Fprintf(p.options.Out, "%s %s (#%d, %s)\n",
		text.FgGreen.Sprint("✓"), deploy.MsgCreateStarted, resp.Deployment.ID, resp.Deployment.Name)
	return nil
}

// PrintAction reports a delete or restart acknowledgement.
func (p *Printer) PrintAction(resp deploy.ActionResponse, fallback string) error {
	if done, err := p.structured(resp); done {
		return err
	}
	if p.options.Quiet {
		return nil
	}
	msg := resp.Message
	if msg == "" {
		msg = fallback
	}
	fmt.Fprintf(p.options.Out, "%s %s (#%d)\n", text.FgGreen.Sprint("✓"), msg, resp.DeploymentID)
	return nil
}

// PrintLogs writes the Terraform output and the deployment log one after the other.
func (p *Printer) PrintLogs(logs deploy.Logs) error {
	if done, err := p.structured(logs); done {
		return err
	}
	if logs.TerraformOutput == "" && logs.DeploymentLog == "" {
		fmt.Fprintln(p.options.Out, text.FgYellow.Sprint(deploy.MsgNoLogs))
		return nil
	}
	if logs.TerraformOutput != "" {
		fmt.Fprintln(p.options.Out, text.FgHiCyan.Sprint("=== Terraform ==="))
		fmt.Fprintln(p.options.Out, strings.TrimRight(logs.TerraformOutput, "\n"))
	}
	if logs.DeploymentLog != "" {
		if logs.TerraformOutput != "" {
			fmt.Fprintln(p.options.Out)
		}
		fmt.Fprintln(p.options.Out, text.FgHiCyan.Sprint("=== Déploiement ==="))
		fmt.Fprintln(p.options.Out, strings.TrimRight(logs.DeploymentLog, "\n"))
	}
	return nil
}

// PrintResources renders the node snapshot. A snapshot carrying an error prints
// only that error.
func (p *Printer) PrintResources(snap deploy.ResourceSnapshot) error {
	if done, err := p.structured(snap); done {
		return err
	}
	if snap.Error != "" {
		fmt.Fprintln(p.options.Out, text.FgRed.Sprint(snap.Error))
		return nil
	}

	node := snap.Node
	t := p.newTable()
	t.AppendHeader(header("resource", "value"))
	t.AppendRows([]table.Row{
		{text.FgYellow.Sprint("Noeud"), node.Name},
		{text.FgYellow.Sprint("Statut"), formatNodeStatus(node.Status)},
		{text.FgYellow.Sprint("CPU"), fmt.Sprintf("%d coeurs, %s%%", node.CPU.Cores, number(node.CPU.Usage))},
		{text.FgYellow.Sprint("Mémoire"), fmt.Sprintf("%s / %s GB (%s GB libres)",
			number(node.Memory.Used), number(node.Memory.Total), number(node.Memory.Free))},
		{text.FgYellow.Sprint("VMs"), fmt.Sprintf("%d / %d en cours", snap.VMs.Running, snap.VMs.Total)},
		{text.FgYellow.Sprint("Conteneurs LXC"), fmt.Sprintf("%d / %d en cours", snap.Containers.Running, snap.Containers.Total)},
	})
	t.Render()
	return nil
}

// PrintStatus renders the backend health and deployment counts.
func (p *Printer) PrintStatus(status deploy.SystemStatus) error {
	if done, err := p.structured(status); done {
		return err
	}

	proxmox := text.FgRed.Sprint("● " + deploy.DisconnectedLabel)
	if status.System.ProxmoxConnected {
		proxmox = text.FgGreen.Sprint("● " + deploy.ConnectedLabel)
	}
	c := status.Deployments
	t := p.newTable()
	t.AppendHeader(header("property", "value"))
	t.AppendRows([]table.Row{
		{text.FgYellow.Sprint("system"), status.System.Status},
		{text.FgYellow.Sprint("proxmox"), proxmox},
		{text.FgYellow.Sprint("total"), c.Total},
		{text.FgYellow.Sprint("running"), c.Running},
		{text.FgYellow.Sprint("pending"), c.Pending},
		{text.FgYellow.Sprint("failed"), c.Failed},
	})
	t.Render()
	return nil
}

// PrintToolResult renders the JSON text returned by an MCP tool. Objects become
// property/value rows and anything else is printed as received.
func (p *Printer) PrintToolResult(raw string) error {
	var data interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		fmt.Fprintln(p.options.Out, raw)
		return nil
	}
	if p.options.Format == OutputFormatJSON {
		fmt.Fprintln(p.options.Out, raw)
		return nil
	}
	if done, err := p.structured(data); done {
		return err
	}

	obj, ok := data.(map[string]interface{})
	if !ok {
		fmt.Fprintln(p.options.Out, raw)
		return nil
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := p.newTable()
	t.AppendHeader(header("property", "value"))
	for _, k := range keys {
		t.AppendRow(table.Row{text.FgYellow.Sprint(k), formatAny(obj[k])})
	}
	t.Render()
	return nil
}

// PrintTools lists tool names with their descriptions.
func (p *Printer) PrintTools(tools []ToolInfo) error {
	if done, err := p.structured(tools); done {
		return err
	}
	t := p.newTable()
	t.AppendHeader(header("name", "description"))
	for _, tool := range tools {
		t.AppendRow(table.Row{text.FgCyan.Sprint(tool.Name), truncate(tool.Description, 70)})
	}
	t.Render()
	return nil
}

func formatStatus(status deploy.Status) string {
	label := deploy.StatusLabel(status)
	switch status {
	case deploy.StatusRunning:
		return text.FgGreen.Sprint("● " + label)
	case deploy.StatusFailed:
		return text.FgRed.Sprint("✗ " + label)
	case deploy.StatusPending, deploy.StatusCreating:
		return text.FgYellow.Sprint("○ " + label)
	case deploy.StatusStopped, deploy.StatusDeleted:
		return text.FgHiBlack.Sprint("■ " + label)
	default:
		return label
	}
}

func formatNodeStatus(status string) string {
	if status == "online" {
		return text.FgGreen.Sprint(status)
	}
	return text.FgRed.Sprint(status)
}

func formatResources(r deploy.Resources) string {
	return fmt.Sprintf("%d CPU · %d MB · %d GB", r.CPU, r.Memory, r.Disk)
}

func formatAny(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return text.FgHiBlack.Sprint("-")
	case string:
		return truncate(val, 60)
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return truncate(string(data), 60)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func orDash(s string) string {
	if s == "" {
		return text.FgHiBlack.Sprint("-")
	}
	return s
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
