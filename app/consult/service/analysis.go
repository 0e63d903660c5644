package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"

	"go-consult/app/consult"
	"go-consult/app/consult/model"
	"go-consult/common/counter"
	"go-consult/common/log"
	"go-consult/common/util"
	"go-consult/config"
)

var llmClient = resty.New().SetTimeout(120 * time.Second)

// corpusHash fingerprints the feedback corpus. The same items in the same
// order always produce the same hash, so an unchanged corpus is a cache hit.
func corpusHash(items []string) uint32 {
	var h uint32
	for _, item := range items {
		for _, ch := range item {
			h = h*31 + uint32(ch)
		}
		h = h*31 + '\n'
	}
	return h
}

// gatherCorpus collects everything the analysis reads: approved pin comments
// and enquiry messages, oldest first.
func gatherCorpus(ctx context.Context, projectID int) ([]string, error) {
	items := make([]string, 0, 64)

	pins := make([]model.PublicPin, 0, 64)
	err := consult.GormDB.WithContext(ctx).
		Select("comment").
		Where("project_id = ? and status = ? and comment <> ''", projectID, model.PinStatusApproved).
		Order("id asc").
		Find(&pins).Error
	if err != nil {
		return nil, err
	}
	items = append(items, util.Map(pins, func(p model.PublicPin) string { return p.Comment })...)

	enquiries := make([]model.Enquiry, 0, 64)
	err = consult.GormDB.WithContext(ctx).
		Select("body").
		Where("project_id = ? and status <> ? and body <> ''", projectID, model.EnquiryStatusSpam).
		Order("id asc").
		Find(&enquiries).Error
	if err != nil {
		return nil, err
	}
	items = append(items, util.Map(enquiries, func(e model.Enquiry) string { return e.Body })...)
	return items, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatReq struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResp struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// complete runs one chat completion and returns the assistant text.
func complete(ctx context.Context, system, user string) (string, error) {
	cfg := config.ExtConfig.LLM
	if cfg.Endpoint == "" {
		return "", errors.New("llm endpoint is not configured")
	}
	var got chatResp
	resp, err := llmClient.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetBody(chatReq{
			Model: cfg.Model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: user},
			},
		}).
		SetResult(&got).
		Post(cfg.Endpoint + "/v1/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() >= 300 {
		return "", fmt.Errorf("completion status %d: %s", resp.StatusCode(), got.Error.Message)
	}
	if len(got.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return strings.TrimSpace(got.Choices[0].Message.Content), nil
}

func numberedCorpus(items []string) string {
	var b strings.Builder
	for i, item := range items {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(item)
		b.WriteString("\n")
	}
	return b.String()
}

var sentimentLabels = map[string]struct{}{
	"positive": {},
	"neutral":  {},
	"negative": {},
}

// analyzeSentiment labels every item and tallies the labels into a
// breakdown document like {"positive":12,"neutral":3,"negative":5}.
func analyzeSentiment(ctx context.Context, items []string) (string, error) {
	raw, err := complete(ctx,
		"You classify public consultation feedback. Reply with a JSON array of "+
			"sentiment labels, one per numbered item, each one of "+
			`"positive", "neutral" or "negative". Reply with the JSON array only.`,
		numberedCorpus(items))
	if err != nil {
		return "", err
	}
	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return "", fmt.Errorf("sentiment reply is not a JSON array: %w", err)
	}
	tally := counter.Counter[string]{"positive": 0, "neutral": 0, "negative": 0}
	for _, label := range labels {
		label = strings.ToLower(strings.TrimSpace(label))
		if _, ok := sentimentLabels[label]; !ok {
			label = "neutral"
		}
		tally.Inc(label, 1)
	}
	breakdown, err := json.Marshal(tally)
	if err != nil {
		return "", err
	}
	return string(breakdown), nil
}

type theme struct {
	Theme    string `json:"theme"`
	Mentions int    `json:"mentions"`
}

const topThemes = 8

// analyzeThemes extracts recurring themes and keeps the most mentioned ones,
// ordered by mention count.
func analyzeThemes(ctx context.Context, items []string) (string, error) {
	raw, err := complete(ctx,
		"You extract recurring themes from public consultation feedback. Reply "+
			`with a JSON array of {"theme": string, "mentions": number} objects. `+
			"Reply with the JSON array only.",
		numberedCorpus(items))
	if err != nil {
		return "", err
	}
	var themes []theme
	if err := json.Unmarshal([]byte(raw), &themes); err != nil {
		return "", fmt.Errorf("themes reply is not a JSON array: %w", err)
	}
	tally := counter.Counter[string]{}
	for _, t := range themes {
		if t.Theme == "" || t.Mentions <= 0 {
			continue
		}
		tally.Inc(strings.TrimSpace(t.Theme), t.Mentions)
	}
	ranked := make([]theme, 0, topThemes)
	for len(tally) > 0 && len(ranked) < topThemes {
		name, n := tally.PopMax()
		ranked = append(ranked, theme{Theme: name, Mentions: n})
	}
	out, err := json.Marshal(ranked)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func analyzeSummary(ctx context.Context, items []string) (string, error) {
	return complete(ctx,
		"You brief a local authority planning team. Summarise the consultation "+
			"feedback below in at most three short paragraphs of plain prose, "+
			"covering the overall mood and the main concerns.",
		numberedCorpus(items))
}

func latestRunKey(projectID int) string {
	return "consult:analysis:latest:" + strconv.Itoa(projectID)
}

type RunAnalysisReq struct {
	ProjectID int `json:"projectId"`

	UserID int `json:"-"`
}

// RunAnalysis produces the AI sentiment, theme and summary read-out for a
// project's feedback. A run over an unchanged corpus returns the stored row
// instead of calling the model again.
func RunAnalysis(ctx context.Context, req RunAnalysisReq) (model.AnalysisRun, error) {
	var run model.AnalysisRun
	err := log.WithTracer(ctx, PackageName, "run analysis", func(ctx context.Context) error {
		items, err := gatherCorpus(ctx, req.ProjectID)
		if err != nil {
			consult.Logger().WithContext(ctx).Error("analysis: gather corpus: ", err.Error())
			return err
		}
		if len(items) == 0 {
			return errors.New("no feedback to analyse yet")
		}
		hash := corpusHash(items)
		err = consult.GormDB.WithContext(ctx).
			Where("project_id = ? and source_hash = ?", req.ProjectID, hash).
			Order("id desc").
			First(&run).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			consult.Logger().WithContext(ctx).Error("analysis: lookup run: ", err.Error())
			return err
		}

		sentiment, err := analyzeSentiment(ctx, items)
		if err != nil {
			consult.Logger().WithContext(ctx).Error("analysis: sentiment: ", err.Error())
			return err
		}
		themes, err := analyzeThemes(ctx, items)
		if err != nil {
			consult.Logger().WithContext(ctx).Error("analysis: themes: ", err.Error())
			return err
		}
		summary, err := analyzeSummary(ctx, items)
		if err != nil {
			consult.Logger().WithContext(ctx).Error("analysis: summary: ", err.Error())
			return err
		}

		run = model.AnalysisRun{
			ProjectID:  req.ProjectID,
			SourceHash: hash,
			ItemCount:  len(items),
			Model:      config.ExtConfig.LLM.Model,
			Sentiment:  sentiment,
			Themes:     themes,
			Summary:    summary,
		}
		run.SetCreateBy(req.UserID)
		run.SetUpdateBy(req.UserID)
		if err := consult.GormDB.WithContext(ctx).Create(&run).Error; err != nil {
			consult.Logger().WithContext(ctx).Error("analysis: save run: ", err.Error())
			return err
		}
		analysisRuns.Add(ctx, 1)
		if consult.RedisClient != nil {
			if err := consult.RedisClient.Set(ctx, latestRunKey(req.ProjectID),
				run.ID, 24*time.Hour).Err(); err != nil {
				consult.Logger().WithContext(ctx).Warn("analysis: cache latest run: ", err.Error())
			}
		}
		return nil
	})
	return run, err
}

type GetLatestAnalysisReq struct {
	ProjectID int `form:"projectId"`
}

// GetLatestAnalysis returns the most recent run, consulting the redis
// pointer first and falling back to the table.
func GetLatestAnalysis(ctx context.Context, req GetLatestAnalysisReq) (model.AnalysisRun, error) {
	var run model.AnalysisRun
	if consult.RedisClient != nil {
		if id, err := consult.RedisClient.Get(ctx, latestRunKey(req.ProjectID)).Int(); err == nil {
			err = consult.GormDB.WithContext(ctx).
				Where("id = ? and project_id = ?", id, req.ProjectID).
				First(&run).Error
			if err == nil {
				return run, nil
			}
		}
	}
	err := consult.GormDB.WithContext(ctx).
		Where("project_id = ?", req.ProjectID).
		Order("id desc").
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return run, ErrNotFound
	}
	if err != nil {
		consult.Logger().WithContext(ctx).Error("latest analysis: ", err.Error())
	}
	return run, err
}
