package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/Junyu06/DynamicDo-Backend/pkg/dynamicdoapi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	switch os.Args[1] {
	case "register":
		runRegister(os.Args[2:])
	case "login":
		runLogin(os.Args[2:])
	case "add":
		runAdd(os.Args[2:])
	case "list":
		runList(os.Args[2:])
	case "rank":
		runRank(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dynamicdoctl <register|login|add|list|rank> [...]")
}

func runRegister(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	url := fs.String("url", apiURL(), "api base URL")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		fatalf("--email and --password are required")
	}
	var out dynamicdoapi.RegisterResponse
	postJSON(*url+"/api/users/register", "", dynamicdoapi.RegisterRequest{Email: *email, Password: *password}, &out)
	fmt.Printf("registered %s (user_id=%s)\n", out.Email, out.UserID)
}

func runLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	url := fs.String("url", apiURL(), "api base URL")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)
	if *email == "" || *password == "" {
		fatalf("--email and --password are required")
	}
	var out dynamicdoapi.LoginResponse
	postJSON(*url+"/api/users/login", "", dynamicdoapi.LoginRequest{Email: *email, Password: *password}, &out)
	fmt.Println(out.Token)
}

func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	url := fs.String("url", apiURL(), "api base URL")
	token := fs.String("token", apiToken(), "bearer token (or DYNAMICDO_TOKEN)")
	title := fs.String("title", "", "reminder title")
	notes := fs.String("notes", "", "notes")
	date := fs.String("date", "", "due date, YYYY-MM-DD")
	timeOfDay := fs.String("time", "", "due time, HH:MM")
	priority := fs.String("priority", "", "high|medium|low")
	list := fs.String("list", "", "list name")
	tag := fs.String("tag", "", "tag")
	_ = fs.Parse(args)
	if *title == "" {
		fatalf("--title is required")
	}
	var out dynamicdoapi.Reminder
	postJSON(*url+"/api/reminders", *token, dynamicdoapi.CreateReminderRequest{
		Title:    *title,
		Notes:    *notes,
		Date:     *date,
		Time:     *timeOfDay,
		Priority: *priority,
		List:     *list,
		Tag:      *tag,
	}, &out)
	fmt.Printf("created %s (%s)\n", out.Title, out.ID)
}

func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	url := fs.String("url", apiURL(), "api base URL")
	token := fs.String("token", apiToken(), "bearer token (or DYNAMICDO_TOKEN)")
	_ = fs.Parse(args)
	var out dynamicdoapi.ListRemindersResponse
	getJSON(*url+"/api/reminders", *token, &out)
	for _, rec := range out.Reminders {
		status := " "
		if rec.Completed {
			status = "x"
		}
		fmt.Printf("[%s] %-8s %-12s %s (%s)\n", status, rec.Priority, rec.Date, rec.Title, rec.ID)
	}
}

func runRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	url := fs.String("url", apiURL(), "api base URL")
	token := fs.String("token", apiToken(), "bearer token (or DYNAMICDO_TOKEN)")
	context := fs.String("context", "", "free-text ranking context")
	debug := fs.Bool("debug", false, "request per-item reasoning")
	_ = fs.Parse(args)
	var out dynamicdoapi.RankResponse
	postJSON(*url+"/api/reminders/rank", *token, dynamicdoapi.RankRequest{Context: *context, Debug: *debug}, &out)
	if out.Count == 0 {
		fmt.Println(out.Message)
		return
	}
	for i, rec := range out.Reminders {
		fmt.Printf("%2d. %.2f %-8s %s\n", i+1, rec.Rank, rec.Priority, rec.Title)
		if rec.Reasoning != "" {
			fmt.Printf("    %s\n", rec.Reasoning)
		}
	}
}

func apiURL() string {
	if v := strings.TrimSpace(os.Getenv("DYNAMICDO_API")); v != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://localhost:8080"
}

func apiToken() string {
	return strings.TrimSpace(os.Getenv("DYNAMICDO_TOKEN"))
}

func postJSON(url, token string, payload, out any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fatalf("encode request: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	doJSON(req, token, out)
}

func getJSON(url, token string, out any) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		fatalf("build request: %v", err)
	}
	doJSON(req, token, out)
}

func doJSON(req *http.Request, token string, out any) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		fatalf("%s returned %s: %s", req.URL.Path, resp.Status, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		fatalf("decode response: %v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
