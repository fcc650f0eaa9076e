package service

import (
	"fmt"

	"aiready/internal/model"
)

// ClassifyTier maps an overall percentage score to a readiness tier.
// Thresholds are fixed and non-overlapping.
func ClassifyTier(percentage int) model.ReadinessTier {
	switch {
	case percentage >= 80:
		return model.TierChampion
	case percentage >= 65:
		return model.TierExplorer
	case percentage >= 50:
		return model.TierLearner
	default:
		return model.TierNeedsDevelopment
	}
}

const (
	strengthThreshold    = 70
	improvementThreshold = 50
)

var tierDescriptions = map[model.ReadinessTier]string{
	model.TierChampion:         "You are ready to lead AI adoption and mentor colleagues on practical AI workflows.",
	model.TierExplorer:         "You have a solid foundation and are actively experimenting with AI in your daily work.",
	model.TierLearner:          "You understand the basics and are building the habits to use AI tools effectively.",
	model.TierNeedsDevelopment: "You are at the start of your AI journey; focused practice will build confidence quickly.",
}

var tierNextSteps = map[model.ReadinessTier][]string{
	model.TierChampion: {
		"Run a lunch-and-learn demoing one AI workflow from your team",
		"Pilot an AI-assisted process improvement and measure the time saved",
		"Mentor two colleagues through their first AI-assisted project",
		"Contribute prompt templates to the internal knowledge base",
		"Evaluate one new AI tool per quarter against your team's needs",
	},
	model.TierExplorer: {
		"Pick one recurring task and automate it end-to-end with an AI tool",
		"Compare outputs from two different AI assistants on the same task",
		"Write down your three most effective prompts and share them",
		"Join the internal AI practitioners channel and post one learning",
		"Complete an intermediate prompt-engineering course",
	},
	model.TierLearner: {
		"Use an AI assistant for one work task every day this month",
		"Complete the introductory AI literacy course in the portal",
		"Ask a colleague to walk you through their favorite AI workflow",
		"Practice rewriting one prompt three ways and compare results",
		"Keep a notes page of tasks where AI saved or cost you time",
	},
	model.TierNeedsDevelopment: {
		"Complete the AI basics onboarding module",
		"Try a single guided AI exercise with a teammate this week",
		"Read the internal AI usage guidelines",
		"Identify one repetitive task that frustrates you as a candidate for AI help",
		"Schedule 30 minutes weekly for hands-on AI practice",
	},
}

var strengthPhrases = map[string]string{
	"AI Tool Usage":           "Confident hands-on use of AI tools",
	"Data Literacy":           "Strong grasp of data and how to reason about it",
	"Automation Mindset":      "Sharp eye for processes worth automating",
	"Learning & Adaptability": "Quick to pick up new tools and ways of working",
	"AI Ethics & Safety":      "Sound judgment on responsible AI use",
}

var improvementPhrases = map[string]string{
	"AI Tool Usage":           "Build daily familiarity with AI assistants",
	"Data Literacy":           "Strengthen comfort with data-driven reasoning",
	"Automation Mindset":      "Practice spotting tasks that AI could take over",
	"Learning & Adaptability": "Set aside regular time to try unfamiliar tools",
	"AI Ethics & Safety":      "Review guidelines for safe and responsible AI use",
}

// BuildRecommendations derives strengths, gaps, and next steps from the
// overall percentage and category scores. It is a pure function and
// always returns a fully-populated structure.
func BuildRecommendations(percentage int, categoryScores []model.CategoryScore) model.Recommendations {
	tier := ClassifyTier(percentage)

	rec := model.Recommendations{
		TierDescription:  tierDescriptions[tier],
		NextSteps:        tierNextSteps[tier],
		Strengths:        []string{},
		ImprovementAreas: []string{},
	}

	for _, cs := range categoryScores {
		if cs.Percentage >= strengthThreshold {
			phrase, ok := strengthPhrases[cs.CategoryName]
			if !ok {
				phrase = fmt.Sprintf("Strong %s", cs.CategoryName)
			}
			rec.Strengths = append(rec.Strengths, phrase)
		}
		if cs.Percentage < improvementThreshold {
			phrase, ok := improvementPhrases[cs.CategoryName]
			if !ok {
				phrase = fmt.Sprintf("Develop %s", cs.CategoryName)
			}
			rec.ImprovementAreas = append(rec.ImprovementAreas, phrase)
		}
	}

	rec.Message = fmt.Sprintf("You scored %d%% and are classified as %s. %s %s",
		percentage, tier, rec.TierDescription, tierClosings[tier])

	return rec
}

var tierClosings = map[model.ReadinessTier]string{
	model.TierChampion:         "Keep pushing the frontier for your team.",
	model.TierExplorer:         "One more stretch and you will be leading the way.",
	model.TierLearner:          "Consistency is what turns learners into explorers.",
	model.TierNeedsDevelopment: "Small weekly steps compound faster than you expect.",
}
