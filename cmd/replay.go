package cmd

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora/v3"
	"github.com/panjf2000/ants"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/thoas/go-funk"

	"github.com/sundew-project/sundew/core"
	"github.com/sundew-project/sundew/database"
	"github.com/sundew-project/sundew/sender"
	"github.com/sundew-project/sundew/utils"
)

func init() {
	var replayCmd = &cobra.Command{
		Use:   "replay",
		Short: "Resend raw requests through the proxy pipeline",
		Long:  "Read burp-style raw request files, resend them and record exchanges plus findings",
		RunE:  runReplay,
	}
	replayCmd.Flags().StringP("requests", "r", "", "folder or file that holds raw requests")
	replayCmd.Flags().String("host", "", "override target host")
	replayCmd.Flags().Int("port", 0, "override target port")
	replayCmd.Flags().Bool("tls", true, "connect with TLS")
	replayCmd.Flags().StringP("match", "m", "", "file a finding when the response body contains this string")
	RootCmd.AddCommand(replayCmd)
}

type replayJob struct {
	File  string
	Host  string
	Port  int
	TLS   bool
	Match string
}

func runReplay(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("requests")
	if input == "" {
		return fmt.Errorf("no raw requests given, use -r")
	}

	var rawFiles []string
	if utils.FolderExists(input) {
		rawFiles = utils.GetFileNames(input, ".txt")
	} else if utils.FileExists(input) {
		rawFiles = append(rawFiles, input)
	}
	if funk.IsEmpty(rawFiles) {
		return fmt.Errorf("no raw requests found in %v", input)
	}

	sdk, closeSDK, err := buildSDK()
	if err != nil {
		return err
	}
	defer closeSDK()

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	useTLS, _ := cmd.Flags().GetBool("tls")
	match, _ := cmd.Flags().GetString("match")

	var wg sync.WaitGroup
	p, _ := ants.NewPoolWithFunc(options.Concurrency, func(j interface{}) {
		defer wg.Done()
		replayOne(sdk, j.(replayJob))
	})
	defer p.Release()

	for _, file := range rawFiles {
		wg.Add(1)
		_ = p.Invoke(replayJob{File: file, Host: host, Port: port, TLS: useTLS, Match: match})
	}
	wg.Wait()
	return nil
}

// replayOne resend one raw request file through the SDK
func replayOne(sdk *core.SDK, job replayJob) {
	raw := utils.GetFileContent(job.File)
	if raw == "" {
		sdk.Console.Warn(fmt.Sprintf("empty request file %v", job.File))
		return
	}

	spec, err := buildRawSpec(raw, job)
	if err != nil {
		sdk.Console.Error(fmt.Sprintf("building spec from %v: %v", job.File, err))
		return
	}
	if !sdk.Requests.InScope(spec) {
		sdk.Console.Log(fmt.Sprintf("out of scope, skipping %v", spec.Host()))
		return
	}

	pair, err := sdk.Requests.Send(context.Background(), spec)
	if err != nil {
		sdk.Console.Error(fmt.Sprintf("replaying %v: %v", job.File, err))
		return
	}

	res := pair.Response()
	sdk.Console.Log(fmt.Sprintf("%v -> %v", pair.Request().URL(), res.Code()))

	if job.Match == "" || res.Body() == nil {
		return
	}
	if !strings.Contains(res.Body().ToText(), job.Match) {
		return
	}
	finding, err := sdk.Findings.Create(context.Background(), core.FindingSpec{
		Title:       fmt.Sprintf("Match %q on %v", job.Match, pair.Request().URL()),
		Description: fmt.Sprintf("response status %v body matched %q", res.Code(), job.Match),
		Reporter:    options.Reporter,
		DedupeKey:   fmt.Sprintf("replay-%v-%v", pair.Request().Host(), job.Match),
		Request:     pair.Request(),
	})
	if err != nil {
		sdk.Console.Error(fmt.Sprintf("filing finding: %v", err))
		return
	}
	au := aurora.NewAurora(true)
	fmt.Printf("[%s][%s] %s\n", au.Green("Finding"), au.Cyan(finding.ID()), au.Green(finding.Title()))
}

// buildRawSpec seed a raw spec from file content, target taken from the
// Host header unless overridden
func buildRawSpec(raw string, job replayJob) (*core.RequestSpecRaw, error) {
	host := job.Host
	if host == "" {
		for _, line := range strings.Split(raw, "\n") {
			if strings.HasPrefix(strings.ToLower(line), "host:") {
				host = strings.TrimSpace(line[len("host:"):])
				break
			}
		}
	}
	if host == "" {
		return nil, fmt.Errorf("no Host header and no --host override")
	}

	port := job.Port
	if strings.Contains(host, ":") {
		parts := strings.SplitN(host, ":", 2)
		host = parts[0]
		if port == 0 {
			port = cast.ToInt(parts[1])
		}
	}
	if port == 0 {
		if job.TLS {
			port = 443
		} else {
			port = 80
		}
	}

	scheme := "http"
	if job.TLS {
		scheme = "https"
	}
	spec, err := core.NewRequestSpecRaw(fmt.Sprintf("%v://%v:%v/", scheme, host, port))
	if err != nil {
		return nil, err
	}
	// raw files are usually LF, the wire wants CRLF
	normalized := strings.ReplaceAll(strings.ReplaceAll(raw, "\r\n", "\n"), "\n", "\r\n")
	spec.SetRaw(normalized)
	return spec, nil
}

// buildSDK wire console, transport, stores and scope into one handle
func buildSDK() (*core.SDK, func(), error) {
	console := utils.NewConsole()
	transport := sender.NewClient(options)

	var recorder core.Recorder
	var store core.FindingStore
	closer := func() {}

	if options.NoDB {
		memory := database.NewMemoryStore()
		recorder = memory
		store = memory
	} else {
		dbPath := path.Join(options.RootFolder, "sundew.db")
		db, err := database.InitDB(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database %v: %w", dbPath, err)
		}
		closer = func() { db.Close() }
		capture := database.NewCaptureStore(db)
		recorder = capture
		store = database.NewFindingDB(db, capture)
	}

	requests := core.NewRequests(transport, scopeRules, recorder, console)
	findings := core.NewFindings(store)
	return core.NewSDK(console, requests, findings), closer, nil
}
