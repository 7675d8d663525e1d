package memory

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/osint-lab/argus/pkg/domain/model"
	"github.com/osint-lab/argus/pkg/domain/types"
)

// Deterministic seed content per platform, mirroring what the collection
// connectors of the remote backend return for a demo run.
var seedText = map[types.Platform][]string{
	types.PlatformX: {
		"Breaking: circulating claims about policy changes with no cited source",
		"Coordinated repost wave detected around regional energy narrative",
		"Multiple accounts amplifying identical text in Arabic and English",
	},
	types.PlatformTelegram: {
		"Forwarded post with unverifiable casualty claims and viral traction",
		"Channel network shares mirrored narrative blocks within minutes",
		"Media asset reused with altered caption targeting local audience",
	},
	types.PlatformYouTube: {
		"Comment clusters repeating same claim template across videos",
		"Re-uploaded clip framed as current event without timestamp context",
		"Cross-linking to low-credibility domains in description threads",
	},
	types.PlatformInstagram: {
		"Carousel post spreads infographic with missing citation metadata",
		"Stories from multiple pages synchronize wording and hashtag sets",
		"Recycled image appears with contradictory location tagging",
	},
	types.PlatformWeb: {
		"Blog network republishes the same article body with modified headlines",
		"Domain cluster shows coordinated backlinking to boost visibility",
		"Low-trust pages embed copied claims without source attribution",
	},
}

var connectorHealth = []model.ConnectorStatus{
	{Connector: "sherlock-identity", Domain: "social_identity", Health: "healthy", SuccessRate: 0.98, AvgLatencyMS: 420},
	{Connector: "telegram-intel-pack", Domain: "social_content", Health: "healthy", SuccessRate: 0.95, AvgLatencyMS: 510},
	{Connector: "instagram-intel-pack", Domain: "social_content", Health: "degraded", SuccessRate: 0.88, AvgLatencyMS: 860, LastError: "rate-limit burst in last run"},
	{Connector: "web-check-stack", Domain: "web_infra", Health: "healthy", SuccessRate: 0.99, AvgLatencyMS: 310},
	{Connector: "theharvester-domain-enum", Domain: "web_infra", Health: "healthy", SuccessRate: 0.93, AvgLatencyMS: 740},
}

var sourceCatalog = []model.SourceCatalogEntry{
	{ID: "src_awesome_osint", Name: "Awesome OSINT", Category: "catalog", SourceType: "index", OriginRepo: "jivoi/awesome-osint", URL: "https://github.com/jivoi/awesome-osint", Tags: []string{"catalog", "multi-domain", "discovery"}},
	{ID: "src_spiderfoot", Name: "SpiderFoot", Category: "engine", SourceType: "tool", OriginRepo: "smicallef/spiderfoot", URL: "https://github.com/smicallef/spiderfoot", Tags: []string{"automation", "correlation", "osint"}},
	{ID: "src_sherlock", Name: "Sherlock", Category: "identity", SourceType: "tool", OriginRepo: "sherlock-project/sherlock", URL: "https://github.com/sherlock-project/sherlock", Tags: []string{"username", "social", "discovery"}},
	{ID: "src_social_analyzer", Name: "Social Analyzer", Category: "identity", SourceType: "tool", OriginRepo: "qeeqbox/social-analyzer", URL: "https://github.com/qeeqbox/social-analyzer", Tags: []string{"identity", "confidence", "social"}},
	{ID: "src_web_check", Name: "Web Check", Category: "web_infra", SourceType: "tool", OriginRepo: "Lissy93/web-check", URL: "https://github.com/Lissy93/web-check", Tags: []string{"domain", "tls", "headers"}},
	{ID: "src_telegram_osint", Name: "Telegram OSINT Toolbox", Category: "social_content", SourceType: "catalog", OriginRepo: "The-Osint-Toolbox/Telegram-OSINT", URL: "https://github.com/The-Osint-Toolbox/Telegram-OSINT", Tags: []string{"telegram", "channels", "groups"}},
	{ID: "src_instagram_osint", Name: "Osintgram", Category: "social_content", SourceType: "tool", OriginRepo: "Datalux/Osintgram", URL: "https://github.com/Datalux/Osintgram", Tags: []string{"instagram", "posts", "metadata"}},
}

func sha1Hex(s string) string {
	// #nosec G401 - fingerprinting only, matches the backend's ID scheme
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func extractEntities(text string) []string {
	known := map[string]bool{
		"mena": true, "arabic": true, "english": true,
		"policy": true, "energy": true, "claims": true,
	}
	seen := map[string]bool{}
	var entities []string
	cleaned := strings.NewReplacer(":", "", ",", "").Replace(text)
	for _, token := range strings.Fields(cleaned) {
		lower := strings.ToLower(token)
		if known[lower] && !seen[lower] {
			seen[lower] = true
			entities = append(entities, lower)
		}
	}
	sort.Strings(entities)
	return entities
}

const itemsPerPlatform = 4

func collectPlatformItems(caseID types.CaseID, query string, platform types.Platform) []model.ContentItem {
	now := time.Now().UTC()
	seeds := seedText[platform]
	items := make([]model.ContentItem, 0, itemsPerPlatform)
	for i := 0; i < itemsPerPlatform; i++ {
		text := fmt.Sprintf("%s | query=%s", seeds[i%len(seeds)], query)
		author := fmt.Sprintf("%s_account_%d", platform, i+1)
		fingerprint := sha1Hex(fmt.Sprintf("%s:%s:%s:%s", caseID, platform, author, text))[:12]

		var mediaHash string
		switch platform {
		case types.PlatformInstagram, types.PlatformTelegram, types.PlatformYouTube:
			mediaHash = sha1Hex(fmt.Sprintf("media:%s:%d", platform, i/2))[:16]
		}

		narrativeKey := "coordinated-amplification"
		if strings.Contains(strings.ToLower(text), "claims") {
			narrativeKey = "energy-claims-wave"
		}

		language := "en"
		if i%2 == 0 {
			language = "ar"
		}

		items = append(items, model.ContentItem{
			ID:           fmt.Sprintf("itm_%s_%s", platform, fingerprint),
			CaseID:       caseID,
			Platform:     platform,
			Author:       author,
			Text:         text,
			URL:          fmt.Sprintf("https://intel.local/%s/%s", platform, fingerprint),
			ObservedAt:   now.Add(-time.Duration(i*3) * time.Minute),
			Language:     language,
			Engagement:   (i + 1) * 120,
			SourceName:   fmt.Sprintf("%s-collector", platform),
			MediaHash:    mediaHash,
			NarrativeKey: narrativeKey,
			Entities:     extractEntities(text),
		})
	}
	return items
}

func collectCaseItems(caseID types.CaseID, query string, platforms []types.Platform) []model.ContentItem {
	var items []model.ContentItem
	for _, platform := range platforms {
		items = append(items, collectPlatformItems(caseID, query, platform)...)
	}
	return items
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clusterNarratives(items []model.ContentItem) map[string]int {
	clusters := map[string]int{}
	for _, item := range items {
		text := strings.ToLower(item.Text)
		if strings.Contains(text, "coordinated") || strings.Contains(text, "synchronize") {
			clusters["coordinated-amplification"]++
		}
		if strings.Contains(text, "unverifiable") || strings.Contains(text, "no cited source") {
			clusters["source-credibility-gap"]++
		}
		if strings.Contains(text, "reused") || strings.Contains(text, "re-uploaded") || strings.Contains(text, "recycled") {
			clusters["media-recontextualization"]++
		}
		if strings.Contains(text, "claims") {
			clusters["claims-propagation"]++
		}
	}
	return clusters
}

func riskSignals(items []model.ContentItem) model.RiskSignals {
	if len(items) == 0 {
		return model.RiskSignals{}
	}

	var engagementSum int
	platforms := map[types.Platform]bool{}
	languages := map[string]bool{}
	authorCounts := map[string]int{}
	hasCasualty := false
	hasUnverifiable := false
	for _, item := range items {
		engagementSum += item.Engagement
		platforms[item.Platform] = true
		languages[item.Language] = true
		authorCounts[item.Author]++
		text := strings.ToLower(item.Text)
		if strings.Contains(text, "casualty") {
			hasCasualty = true
		}
		if strings.Contains(text, "unverifiable") {
			hasUnverifiable = true
		}
	}
	avgEngagement := float64(engagementSum) / float64(len(items))
	duplicateAuthors := len(items) - len(authorCounts)

	harm := 35.0
	if hasCasualty {
		harm += 8
	}
	velocity := 20 + float64(len(items))*2.2
	reach := avgEngagement / 6.0
	coordination := 18 + float64(duplicateAuthors)*4
	if len(items) > 14 {
		coordination += 10
	}
	credibilityGap := 25.0
	if hasUnverifiable {
		credibilityGap += 12
	}
	crossPlatform := float64(len(platforms))*15 + float64(len(languages))*8

	return model.RiskSignals{
		Harm:           clamp(harm),
		Velocity:       clamp(velocity),
		Reach:          clamp(reach),
		Coordination:   clamp(coordination),
		CredibilityGap: clamp(credibilityGap),
		CrossPlatform:  clamp(crossPlatform),
	}
}

func scoreFromSignals(s model.RiskSignals) float64 {
	return clamp(s.Harm*0.25 +
		s.Coordination*0.2 +
		s.Velocity*0.2 +
		s.Reach*0.15 +
		s.CrossPlatform*0.1 +
		s.CredibilityGap*0.1)
}

// severityFromScore applies the backend's monotonic thresholds
func severityFromScore(score float64) types.Severity {
	switch {
	case score >= 75:
		return types.SeverityR4
	case score >= 55:
		return types.SeverityR3
	case score >= 30:
		return types.SeverityR2
	default:
		return types.SeverityR1
	}
}

func topCounted(counts map[string]int, limit int) []string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

func analyzeItems(items []model.ContentItem) model.AnalysisResult {
	signals := riskSignals(items)
	score := float64(int(scoreFromSignals(signals)*100+0.5)) / 100

	entityCounts := map[string]int{}
	accountCounts := map[string]int{}
	languageCounts := map[string]int{}
	for _, item := range items {
		for _, entity := range item.Entities {
			entityCounts[entity]++
		}
		accountCounts[item.Author]++
		languageCounts[item.Language]++
	}

	return model.AnalysisResult{
		Signals:           signals,
		Score:             score,
		Severity:          severityFromScore(score),
		NarrativeClusters: clusterNarratives(items),
		TopEntities:       topCounted(entityCounts, 6),
		TopAccounts:       topCounted(accountCounts, 5),
		LanguageDist:      languageCounts,
		GeneratedAt:       time.Now().UTC(),
	}
}

func buildAlerts(caseID types.CaseID, analysis *model.AnalysisResult) []model.Alert {
	now := time.Now().UTC()
	clusters := topCounted(analysis.NarrativeClusters, 3)
	clusterSummary := strings.Join(clusters, ", ")
	if clusterSummary == "" {
		clusterSummary = "none"
	}

	alerts := []model.Alert{{
		ID:                "alert_" + sha1Hex(caseID.String()+"primary")[:10],
		CaseID:            caseID,
		Severity:          analysis.Severity,
		Status:            types.AlertStatusOpen,
		Title:             "Coordinated disinformation risk",
		Summary:           fmt.Sprintf("Score %v with top clusters: %s.", analysis.Score, clusterSummary),
		RecommendedAction: "Prioritize analyst validation, preserve evidence, and monitor spread velocity.",
		CreatedAt:         now,
	}}

	if analysis.Signals.CrossPlatform >= 40 {
		severity := analysis.Severity
		if severity == types.SeverityR4 {
			severity = types.SeverityR3
		}
		alerts = append(alerts, model.Alert{
			ID:                "alert_" + sha1Hex(caseID.String()+"cross")[:10],
			CaseID:            caseID,
			Severity:          severity,
			Status:            types.AlertStatusOpen,
			Title:             "Cross-platform amplification",
			Summary:           "Narrative appears on multiple platforms and languages.",
			RecommendedAction: "Escalate to campaign timeline review and monitor bridge accounts.",
			CreatedAt:         now,
		})
	}
	return alerts
}

func buildEvidence(caseID types.CaseID, items []model.ContentItem) []model.Evidence {
	evidence := make([]model.Evidence, 0, len(items))
	now := time.Now().UTC()
	for _, item := range items {
		evidence = append(evidence, model.Evidence{
			ID:           "ev_" + sha1Hex(item.ID+"evidence")[:12],
			CaseID:       caseID,
			ItemID:       item.ID,
			SourceName:   item.SourceName,
			SourceURL:    item.URL,
			EvidenceHash: sha1Hex(item.Text + item.URL),
			Note:         "Captured by unified connector pipeline.",
			CapturedAt:   now,
		})
	}
	return evidence
}

func verifyMedia(items []model.ContentItem) []model.MediaVerification {
	hashCounts := map[string]int{}
	for _, item := range items {
		if item.MediaHash != "" {
			hashCounts[item.MediaHash]++
		}
	}

	var results []model.MediaVerification
	for _, item := range items {
		if item.MediaHash == "" {
			continue
		}
		reused := hashCounts[item.MediaHash] > 1
		text := strings.ToLower(item.Text)
		suspiciousCaption := strings.Contains(text, "unverifiable") || strings.Contains(text, "without")

		var verdict types.Verdict
		var confidence float64
		var explanation string
		switch {
		case reused:
			verdict = types.VerdictReused
			confidence = 0.87
			explanation = "Media hash appears in multiple posts, indicating potential recycling."
		case suspiciousCaption:
			verdict = types.VerdictSuspicious
			confidence = 0.74
			explanation = "Caption has unverifiable framing language."
		default:
			verdict = types.VerdictLikelyAuthentic
			confidence = 0.62
			explanation = "No immediate duplication or caption anomalies detected."
		}

		results = append(results, model.MediaVerification{
			ItemID:      item.ID,
			Verdict:     verdict,
			Confidence:  confidence,
			Checks: map[string]bool{
				"hash_reused":        reused,
				"suspicious_caption": suspiciousCaption,
				"source_consistent":  strings.HasPrefix(item.SourceName, item.Platform.String()),
			},
			Explanation: explanation,
		})
	}
	return results
}

func buildReport(caseID types.CaseID, analysis *model.AnalysisResult, items []model.ContentItem) *model.Report {
	platformCounts := map[string]int{}
	for _, item := range items {
		platformCounts[item.Platform.String()]++
	}
	var platformParts []string
	for _, name := range topCounted(platformCounts, 3) {
		platformParts = append(platformParts, fmt.Sprintf("%s (%d)", name, platformCounts[name]))
	}
	platformSummary := strings.Join(platformParts, ", ")
	if platformSummary == "" {
		platformSummary = "none"
	}
	clusters := strings.Join(topCounted(analysis.NarrativeClusters, 4), ", ")
	if clusters == "" {
		clusters = "none"
	}

	recommendations := []string{
		"Escalate R3/R4 alerts to analyst queue with evidence lock.",
		"Track bridge accounts and recurring narrative keys for 24h.",
		"Run cross-language verification on Arabic-English claim pairs.",
	}
	if analysis.Signals.CredibilityGap > 35 {
		recommendations = append([]string{
			"Prioritize source credibility audit for top-linked domains.",
		}, recommendations...)
	}

	return &model.Report{
		CaseID:   caseID,
		Headline: fmt.Sprintf("%s disinformation posture for case %s", analysis.Severity, caseID),
		ExecutiveSummary: []string{
			fmt.Sprintf("Overall risk score is %v (%s).", analysis.Score, analysis.Severity),
			fmt.Sprintf("Top narrative clusters: %s.", clusters),
			fmt.Sprintf("Primary platform distribution: %s.", platformSummary),
		},
		Findings: []string{
			fmt.Sprintf("Cross-platform signal: %.1f.", analysis.Signals.CrossPlatform),
			fmt.Sprintf("Coordination signal: %.1f.", analysis.Signals.Coordination),
			fmt.Sprintf("Credibility gap signal: %.1f.", analysis.Signals.CredibilityGap),
		},
		Recommendations: recommendations,
		GeneratedAt:     time.Now().UTC(),
	}
}

func buildGraph(items []model.ContentItem) *model.Graph {
	nodeIndex := map[string]model.GraphNode{}
	var nodeOrder []string
	var edges []model.GraphEdge

	addNode := func(id, label, nodeType string) {
		if _, ok := nodeIndex[id]; !ok {
			nodeOrder = append(nodeOrder, id)
		}
		nodeIndex[id] = model.GraphNode{ID: id, Label: label, Type: nodeType}
	}

	for _, item := range items {
		accountNode := "acct:" + item.Author
		platformNode := "platform:" + item.Platform.String()
		addNode(accountNode, item.Author, "account")
		addNode(platformNode, item.Platform.String(), "platform")
		edges = append(edges, model.GraphEdge{Source: accountNode, Target: platformNode, Type: "posts_on"})

		for _, entity := range item.Entities {
			entityNode := "entity:" + entity
			addNode(entityNode, entity, "entity")
			edges = append(edges, model.GraphEdge{Source: accountNode, Target: entityNode, Type: "mentions"})
		}
		if item.NarrativeKey != "" {
			narrativeNode := "narrative:" + item.NarrativeKey
			addNode(narrativeNode, item.NarrativeKey, "narrative")
			edges = append(edges, model.GraphEdge{Source: accountNode, Target: narrativeNode, Type: "amplifies"})
		}
	}

	nodes := make([]model.GraphNode, 0, len(nodeOrder))
	for _, id := range nodeOrder {
		nodes = append(nodes, nodeIndex[id])
	}
	return &model.Graph{Nodes: nodes, Edges: edges}
}
