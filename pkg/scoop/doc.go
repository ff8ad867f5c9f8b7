// Package scoop provides daily anomaly analysis over litter appliance
// activity events.
//
// Quick start:
//
//	s, err := scoop.New(scoop.WithWeightRange(8.5, 9.1))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	report := s.AnalyzeDay([]string{
//	    "Pet Weight Recorded: 8.2 lbs",
//	    "Clean Cycle In Progress",
//	}, nil)
//	for _, alert := range report.Alerts {
//	    fmt.Println(alert)
//	}
//
// Analysis is pure and deterministic: the same events and thresholds always
// produce the same report. A Scoop instance is safe for concurrent use.
package scoop
