package generation

import (
	"fmt"
	"strings"

	"github.com/pitch-assistant-team/pitch-assistant/internal/domain/entities"
)

const slideShape = `Format your response as a JSON array of slide objects. Each slide object must have 'title' (string), 'content' (string), and 'image_prompt' (string, a detailed and creative prompt suitable for generating an image with DALL-E 3 that visually represents the slide's content in a pop art style) properties. Use a pop art style that is energetic and bold for the slide content. For bullet points, use • or numbered lists where appropriate. IMPORTANT: Return ONLY the JSON array without any markdown formatting, explanation, or code blocks.`

const summarySystemPrompt = `You are an expert presentation designer. Your task is to summarize the provided text, which has been extracted from a website, into a concise and informative presentation.
Focus ONLY on the core products, services, key features, or main informational content.
AVOID creating slides from generic website sections such as navigation menus, headers, footers, sidebars, 'Contact Us' pages, social media links, or general marketing statements unless they are absolutely central to the main subject matter.
Also, disregard any text that seems to be analyzing the website's own structure, SEO, or technical implementation details; focus on the subject matter the website is about.
The presentation should be factual and directly based on the provided text. Do not add information not present in the text.
Format your response as a JSON array of slide objects. Each slide object must have 'title' (string), 'content' (string), and 'image_prompt' (string, a detailed and creative prompt suitable for generating an image with DALL-E 3 that visually represents the slide's content in a pop art style) properties.
The 'content' field for each slide should be a single string containing human-readable text, formatted with bullet points (e.g., '• Point 1\n• Point 2') or numbered lists where appropriate. The 'content' field itself should NOT be a JSON string or a JSON array of strings.
Use a pop art style that is energetic and bold in your language and tone for the slide content.
IMPORTANT: Return ONLY the JSON array without any markdown formatting, explanation, or code blocks.`

// Prompts is the system and user message pair fed to the model.
type Prompts struct {
	System string
	User   string
}

// BuildPrompts assembles the prompt pair for a generation request. The
// input must already be resolved, so summary mode receives page text here,
// never a URL.
func BuildPrompts(req entities.GenerationRequest, resolved entities.ResolvedInput, slideCount int) (Prompts, error) {
	var p Prompts

	switch req.Mode {
	case entities.ModeTopic:
		p.System = fmt.Sprintf("You are an expert presentation designer. Create a complete presentation with %d slides (including a cover slide) on the given topic. %s", slideCount, slideShape)
		p.User = fmt.Sprintf("Create a %d-slide presentation on the topic: %q. The first slide should be a cover slide with a catchy title.", slideCount, resolved.Text)
	case entities.ModeBullets:
		p.System = "You are an expert presentation designer. Expand the given bullet points into a complete presentation. " + slideShape
		p.User = fmt.Sprintf("Expand these bullet points into a complete presentation:\n\n%s", resolved.Text)
	case entities.ModeContent:
		p.System = "You are an expert presentation designer. Format the given content into well-designed slides. " + slideShape
		p.User = fmt.Sprintf("Format this content into well-designed slides:\n\n%s", resolved.Text)
	case entities.ModeSummary:
		p.System = summarySystemPrompt
		p.User = fmt.Sprintf("Based on the system instructions, create a presentation from the following text:\n\n%s", resolved.Text)
	default:
		return Prompts{}, fmt.Errorf("invalid generation mode %q", req.Mode)
	}

	var extras []string
	if req.Audience != "" {
		extras = append(extras, fmt.Sprintf("The target audience is: %s.", req.Audience))
	}
	if req.Goal != "" {
		extras = append(extras, fmt.Sprintf("The goal of the presentation is: %s.", req.Goal))
	}
	if len(extras) > 0 {
		p.User = p.User + "\n\n" + strings.Join(extras, " ")
	}

	return p, nil
}
