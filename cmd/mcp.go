package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"lacpctl/internal/config"
	"lacpctl/internal/devices"
	"lacpctl/internal/harness"
)

func newMCPCmd() *cobra.Command {
	var devicesDir string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server exposing the device repository and test suite (stdio transport)",
		Long: `Runs an MCP server over stdio that exposes the device repository and the
test orchestrator as tools, for integration with AI assistants. Progress
output is suppressed; tool results carry the same JSON the --json
reporter emits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if devicesDir == "" {
				devicesDir = cfg.Suite.DevicesDir
			}

			repo := devices.NewRepository(devicesDir)
			handlers := &mcpHandlers{repo: repo, cfg: cfg}

			mcpServer := server.NewMCPServer(
				"lacpctl",
				rootCmd.Version,
				server.WithToolCapabilities(true),
			)
			mcpServer.AddTools(handlers.tools()...)

			return server.ServeStdio(mcpServer)
		},
	}

	cmd.Flags().StringVar(&devicesDir, "devices-dir", "", "devices snapshot directory (overrides config)")
	return cmd
}

// mcpHandlers binds the repository and suite configuration to the MCP tool
// callbacks.
type mcpHandlers struct {
	repo *devices.Repository
	cfg  config.LacpctlConfig
}

func (h *mcpHandlers) tools() []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("list_devices",
				mcp.WithDescription("List the names of all captured devices"),
			),
			Handler: h.handleListDevices,
		},
		{
			Tool: mcp.NewTool("device_overview",
				mcp.WithDescription("Summarize one device: identity, credential presence, interface and LLDP neighbor counts"),
				mcp.WithString("device", mcp.Required(), mcp.Description("Device name")),
			),
			Handler: h.handleDeviceOverview,
		},
		{
			Tool: mcp.NewTool("device_data",
				mcp.WithDescription("Load parsed snapshot data for a device (category: interfaces, lldp, system, or all)"),
				mcp.WithString("device", mcp.Required(), mcp.Description("Device name")),
				mcp.WithString("category", mcp.Description("Data category, defaults to all")),
			),
			Handler: h.handleDeviceData,
		},
		{
			Tool: mcp.NewTool("lacp_interfaces",
				mcp.WithDescription("List the interfaces of a device matched by the link-aggregation heuristic"),
				mcp.WithString("device", mcp.Required(), mcp.Description("Device name")),
			),
			Handler: h.handleLacpInterfaces,
		},
		{
			Tool: mcp.NewTool("run_suite",
				mcp.WithDescription("Discover and execute the regression test suite, returning the summary as JSON"),
				mcp.WithString("device", mcp.Description("Scope the run to a named device")),
				mcp.WithString("filter", mcp.Description("Only run bundles whose name contains this substring")),
			),
			Handler: h.handleRunSuite,
		},
	}
}

func (h *mcpHandlers) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := h.repo.ListDevices()
	if len(names) == 0 {
		return mcp.NewToolResultText("No devices available"), nil
	}
	return jsonToolResult(names)
}

func (h *mcpHandlers) handleDeviceOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("device")
	if err != nil {
		return mcp.NewToolResultError("device parameter is required"), nil
	}
	if !h.repo.HasDevice(name) {
		return mcp.NewToolResultError(fmt.Sprintf("device %q not found", name)), nil
	}
	return jsonToolResult(h.repo.Overview(name))
}

func (h *mcpHandlers) handleDeviceData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("device")
	if err != nil {
		return mcp.NewToolResultError("device parameter is required"), nil
	}
	if !h.repo.HasDevice(name) {
		return mcp.NewToolResultError(fmt.Sprintf("device %q not found", name)), nil
	}

	category := optionalString(request, "category", devices.CategoryAll)
	data := h.repo.LoadDeviceData(name, category)
	if len(data) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No %s data for device %s; available categories: %v",
			category, name, h.repo.AvailableCategories(name))), nil
	}
	return jsonToolResult(data)
}

func (h *mcpHandlers) handleLacpInterfaces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("device")
	if err != nil {
		return mcp.NewToolResultError("device parameter is required"), nil
	}
	if !h.repo.HasDevice(name) {
		return mcp.NewToolResultError(fmt.Sprintf("device %q not found", name)), nil
	}

	lacp := h.repo.LacpInterfaces(name)
	if len(lacp) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No LACP interfaces found on device %s", name)), nil
	}
	return jsonToolResult(lacp)
}

func (h *mcpHandlers) handleRunSuite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	device := optionalString(request, "device", "")
	filter := optionalString(request, "filter", "")

	runner := harness.NewRunner(h.repo, harness.NewNopReporter())
	summary, err := runner.Run(harness.Options{
		TestsDir:      h.cfg.Suite.TestsDir,
		BundlePrefix:  h.cfg.Suite.BundlePrefix,
		EntryPoint:    h.cfg.Suite.EntryPoint,
		Interpreter:   h.cfg.Suite.Interpreter,
		Device:        device,
		Filter:        filter,
		Timeout:       h.cfg.Suite.Timeout(),
		DeviceTimeout: h.cfg.Suite.DeviceTimeout(),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("suite run failed: %v", err)), nil
	}
	return jsonToolResult(summary)
}

// optionalString extracts an optional string argument from a tool request.
func optionalString(request mcp.CallToolRequest, key, fallback string) string {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return fallback
	}
	if value, ok := args[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

func jsonToolResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to format result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
