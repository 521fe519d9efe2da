package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"TrafficLens/internal/core/model"
	"TrafficLens/internal/filter"
	"TrafficLens/internal/stats"
	"TrafficLens/internal/store"
)

func main() {
	datasetPath := flag.String("i", "mock_traffic.csv", "Dataset file to report on")
	protocol := flag.String("protocol", "", "Restrict the report to one protocol")
	topN := flag.Int("n", 5, "Number of destinations to rank")
	flag.Parse()

	ds, err := store.Load(*datasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	records := ds.Records
	if *protocol != "" {
		records, err = filter.Apply(records, filter.Criteria{model.FieldProtocol: *protocol})
		if err != nil {
			log.Fatalf("Failed to filter dataset: %v", err)
		}
	}

	summary := stats.Summarize(records)
	fmt.Printf("Dataset: %s (%d records, %d skipped", *datasetPath, len(records), ds.Skipped)
	if *protocol != "" {
		fmt.Printf(", protocol=%s", *protocol)
	}
	fmt.Println(")")
	if summary.TotalPackets > 0 {
		fmt.Printf("Time range: %s to %s\n", summary.FirstSeen, summary.LastSeen)
		fmt.Printf("Total data: %d bytes, avg packet %.0f bytes\n\n", summary.TotalBytes, summary.AvgPacketSize)
	}

	printProtocolTable(records)
	fmt.Println()
	printTopDestinations(records, *topN)
}

func printProtocolTable(records []model.TrafficRecord) {
	counts := stats.ProtocolCounts(records)

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	// Descending by count, label on ties, so the report is reproducible.
	sort.Slice(labels, func(i, j int) bool {
		if counts[labels[i]] != counts[labels[j]] {
			return counts[labels[i]] > counts[labels[j]]
		}
		return labels[i] < labels[j]
	})

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Protocol", "Packets"})
	for _, label := range labels {
		table.Append([]string{label, strconv.Itoa(counts[label])})
	}
	table.Render()
}

func printTopDestinations(records []model.TrafficRecord, n int) {
	top, err := stats.TopDestinations(records, n)
	if err != nil {
		log.Fatalf("Failed to rank destinations: %v", err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Destination IP", "Packets"})
	for _, d := range top {
		table.Append([]string{d.DestIP, strconv.Itoa(d.Count)})
	}
	table.Render()
}
