package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors       int
	LoginSuccess      int
	LoginFailures     int
	Redemptions       int
	RejectedRedeems   int
	InvitesSent       int
	InvitesAccepted   int
	PayoutsRecorded   int
	UserActivities    map[string]int
	ErrorPatterns     map[string]int
}

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := "./logs"

	stats := &LogStats{
		UserActivities: make(map[string]int),
		ErrorPatterns:  make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Login attempt failed") {
			stats.LoginFailures++
			extractUserActivity(line, stats)
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "logged in successfully") {
			stats.LoginSuccess++
			extractUserActivity(line, stats)
		}
		if strings.Contains(line, "redeemed for invoice") {
			stats.Redemptions++
		}
		if strings.Contains(line, "Redemption rejected") || strings.Contains(line, "Redemption lost the last slot") {
			stats.RejectedRedeems++
		}
		if strings.Contains(line, "Invite created for") {
			stats.InvitesSent++
		}
		if strings.Contains(line, "created via invite") {
			stats.InvitesAccepted++
		}
		if strings.Contains(line, "Payout of") {
			stats.PayoutsRecorded++
		}
	}
}

func extractUserActivity(line string, stats *LogStats) {
	emailRegex := regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	if email := emailRegex.FindString(line); email != "" {
		stats.UserActivities[email]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	parts := strings.Split(line, ":")
	if len(parts) > 1 {
		errorMsg := strings.TrimSpace(parts[1])
		stats.ErrorPatterns[errorMsg]++
	}
}

func printReport(stats *LogStats) {
	fmt.Println("\n=== Portal Log Analysis Report ===")
	fmt.Println("Generated:", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Println("\n1. Authentication:")
	fmt.Printf("   Successful Logins: %d\n", stats.LoginSuccess)
	fmt.Printf("   Failed Logins: %d\n", stats.LoginFailures)

	fmt.Println("\n2. Promo Codes:")
	fmt.Printf("   Redemptions: %d\n", stats.Redemptions)
	fmt.Printf("   Rejected Redemptions: %d\n", stats.RejectedRedeems)

	fmt.Println("\n3. Affiliators:")
	fmt.Printf("   Invites Sent: %d\n", stats.InvitesSent)
	fmt.Printf("   Invites Accepted: %d\n", stats.InvitesAccepted)
	fmt.Printf("   Payouts Recorded: %d\n", stats.PayoutsRecorded)

	fmt.Println("\n4. Errors:")
	fmt.Printf("   Total Error Lines: %d\n", stats.TotalErrors)

	type pattern struct {
		msg   string
		count int
	}
	patterns := make([]pattern, 0, len(stats.ErrorPatterns))
	for msg, count := range stats.ErrorPatterns {
		patterns = append(patterns, pattern{msg, count})
	}
	sort.Slice(patterns, func(i, j int) bool { return patterns[i].count > patterns[j].count })
	for i, p := range patterns {
		if i >= 5 {
			break
		}
		fmt.Printf("   %dx %s\n", p.count, p.msg)
	}
}
