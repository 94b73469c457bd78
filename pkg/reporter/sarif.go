package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/javafix/pkg/config"
	"github.com/yaklabco/javafix/pkg/inspect"
	"github.com/yaklabco/javafix/pkg/runner"
)

// SARIF version used by this reporter.
const sarifVersion = "2.1.0"

// SARIF schema URI.
const sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one inspection.
type SARIFRule struct {
	ID               string               `json:"id"`
	Name             string               `json:"name,omitempty"`
	ShortDescription SARIFMultiformatText `json:"shortDescription"`
	DefaultConfig    *SARIFRuleConfig     `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any       `json:"properties,omitempty"`
}

// SARIFMultiformatText contains text in multiple formats.
type SARIFMultiformatText struct {
	Text string `json:"text"`
}

// SARIFRuleConfig contains rule configuration.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFResult represents a single problem.
type SARIFResult struct {
	RuleID     string          `json:"ruleId"`
	RuleIndex  int             `json:"ruleIndex"`
	Level      string          `json:"level"`
	Message    SARIFMessage    `json:"message"`
	Locations  []SARIFLocation `json:"locations"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// SARIFMessage contains the result message.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
	CharOffset  int `json:"charOffset"`
	CharLength  int `json:"charLength"`
}

// SARIFReporter formats results as SARIF.
type SARIFReporter struct {
	opts Options
	out  io.Writer
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.out)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	version := r.opts.Version
	if version == "" {
		version = "dev"
	}
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           "javafix",
			Version:        version,
			InformationURI: "https://github.com/yaklabco/javafix",
			Rules:          make([]SARIFRule, 0),
		}},
		Results: make([]SARIFResult, 0),
	}

	ruleIndex := make(map[string]int)
	if r.opts.Registry != nil {
		for _, insp := range r.opts.Registry.Inspections() {
			ruleIndex[insp.ID()] = len(run.Tool.Driver.Rules)
			run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, ruleFromInspection(insp))
		}
	}

	if result != nil {
		for _, file := range result.Files {
			doc := documentOf(file)
			if doc == nil {
				continue
			}
			uri := displayPath(file.Path, r.opts.WorkingDir)

			for _, problem := range doc.Problems {
				idx, ok := ruleIndex[problem.InspectionID]
				if !ok {
					idx = len(run.Tool.Driver.Rules)
					ruleIndex[problem.InspectionID] = idx
					run.Tool.Driver.Rules = append(run.Tool.Driver.Rules, SARIFRule{
						ID:               problem.InspectionID,
						Name:             problem.InspectionName,
						ShortDescription: SARIFMultiformatText{Text: problem.InspectionName},
						DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(problem.Severity)},
					})
				}

				res := SARIFResult{
					RuleID:    problem.InspectionID,
					RuleIndex: idx,
					Level:     severityToSARIFLevel(problem.Severity),
					Message:   SARIFMessage{Text: problem.Message},
					Locations: []SARIFLocation{{
						PhysicalLocation: SARIFPhysicalLocation{
							ArtifactLocation: SARIFArtifactLocation{URI: uri},
							Region: SARIFRegion{
								StartLine:   problem.StartLine,
								StartColumn: problem.StartColumn,
								EndLine:     problem.EndLine,
								EndColumn:   problem.EndColumn,
								CharOffset:  problem.Range.Start,
								CharLength:  problem.Range.Len(),
							},
						},
					}},
				}
				if problem.HasFix() {
					res.Properties = map[string]any{"quickFixes": problem.FixTexts()}
				}
				run.Results = append(run.Results, res)
			}
		}
	}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func ruleFromInspection(insp inspect.Inspection) SARIFRule {
	rule := SARIFRule{
		ID:               insp.ID(),
		Name:             insp.Name(),
		ShortDescription: SARIFMultiformatText{Text: insp.Description()},
		DefaultConfig:    &SARIFRuleConfig{Level: severityToSARIFLevel(insp.DefaultSeverity())},
	}
	props := map[string]any{}
	if tags := insp.Tags(); len(tags) > 0 {
		props["tags"] = tags
	}
	if families := insp.FixFamilies(); len(families) > 0 {
		props["fixFamilies"] = strings.Join(families, ", ")
	}
	if len(props) > 0 {
		rule.Properties = props
	}
	return rule
}

// severityToSARIFLevel converts a severity to a SARIF level.
func severityToSARIFLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
