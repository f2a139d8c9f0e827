package main

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"google.golang.org/genai"

	anthropicadapter "github.com/spetersoncode/agui/adapter/anthropic"
	"github.com/spetersoncode/agui/adapter/gemini"
	"github.com/spetersoncode/agui/adapter/openaichat"
	"github.com/spetersoncode/agui/events"
	"github.com/spetersoncode/agui/translate"
)

// Default chat models per provider.
const (
	defaultAnthropicModel = "claude-sonnet-4-5"
	defaultOpenAIModel    = "gpt-5.2"
	defaultGoogleModel    = "gemini-2.5-flash"
)

// Provider starts one model stream for a run. The returned source
// yields provider-neutral stream items ready for translation.
type Provider interface {
	Stream(ctx context.Context, messages []events.Message, tools []events.Tool) (translate.Source, error)
}

func newProvider(ctx context.Context, cfg *Config) (Provider, error) {
	switch cfg.Provider {
	case "anthropic":
		model := cfg.Model
		if model == "" {
			model = defaultAnthropicModel
		}
		return &anthropicProvider{
			client:    sdk.NewClient(anthropicoption.WithAPIKey(cfg.AnthropicKey)),
			model:     model,
			maxTokens: int64(cfg.MaxTokens),
		}, nil
	case "openai":
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return &openaiProvider{
			client:    openai.NewClient(openaioption.WithAPIKey(cfg.OpenAIKey)),
			model:     model,
			maxTokens: int64(cfg.MaxTokens),
		}, nil
	case "google":
		model := cfg.Model
		if model == "" {
			model = defaultGoogleModel
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GoogleKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		return &googleProvider{
			client:    client,
			model:     model,
			maxTokens: int32(cfg.MaxTokens),
		}, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// ----- OpenAI -----

type openaiProvider struct {
	client    openai.Client
	model     string
	maxTokens int64
}

func (p *openaiProvider) Stream(ctx context.Context, messages []events.Message, tools []events.Tool) (translate.Source, error) {
	params := openai.ChatCompletionNewParams{
		Model:     shared.ChatModel(p.model),
		Messages:  convertOpenAIMessages(messages),
		MaxTokens: openai.Int(p.maxTokens),
	}
	if len(tools) > 0 {
		params.Tools = convertOpenAITools(tools)
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return openaichat.NewSource(stream), nil
}

func convertOpenAIMessages(messages []events.Message) []openai.ChatCompletionMessageParamUnion {
	var result []openai.ChatCompletionMessageParamUnion
	for _, msg := range messages {
		content := ""
		if msg.Content != nil {
			content = *msg.Content
		}
		switch msg.Role {
		case events.RoleUser:
			result = append(result, openai.UserMessage(content))
		case events.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				toolCalls := make([]openai.ChatCompletionMessageToolCallParam, len(msg.ToolCalls))
				for i, tc := range msg.ToolCalls {
					toolCalls[i] = openai.ChatCompletionMessageToolCallParam{
						ID: tc.ID,
						Function: openai.ChatCompletionMessageToolCallFunctionParam{
							Name:      tc.Function.Name,
							Arguments: tc.Function.Arguments,
						},
					}
				}
				assistantMsg := openai.ChatCompletionAssistantMessageParam{
					ToolCalls: toolCalls,
				}
				result = append(result, openai.ChatCompletionMessageParamUnion{
					OfAssistant: &assistantMsg,
				})
			} else {
				result = append(result, openai.AssistantMessage(content))
			}
		case events.RoleSystem, events.RoleDeveloper:
			result = append(result, openai.SystemMessage(content))
		case events.RoleTool:
			if msg.ToolCallID != nil {
				result = append(result, openai.ToolMessage(content, *msg.ToolCallID))
			}
		default:
			result = append(result, openai.UserMessage(content))
		}
	}
	return result
}

func convertOpenAITools(tools []events.Tool) []openai.ChatCompletionToolParam {
	if len(tools) == 0 {
		return nil
	}
	result := make([]openai.ChatCompletionToolParam, len(tools))
	for i, t := range tools {
		var params shared.FunctionParameters
		if len(t.Parameters) > 0 {
			json.Unmarshal(t.Parameters, &params)
		}
		result[i] = openai.ChatCompletionToolParam{
			Function: shared.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  params,
			},
		}
	}
	return result
}

// ----- Anthropic -----

type anthropicProvider struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

func (p *anthropicProvider) Stream(ctx context.Context, messages []events.Message, tools []events.Tool) (translate.Source, error) {
	msgs, system := convertAnthropicMessages(messages)
	params := sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages:  msgs,
	}
	if len(system) > 0 {
		params.System = system
	}
	if len(tools) > 0 {
		params.Tools = convertAnthropicTools(tools)
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return anthropicadapter.NewSource(stream), nil
}

func convertAnthropicMessages(messages []events.Message) ([]sdk.MessageParam, []sdk.TextBlockParam) {
	var result []sdk.MessageParam
	var system []sdk.TextBlockParam

	for _, msg := range messages {
		content := ""
		if msg.Content != nil {
			content = *msg.Content
		}
		switch msg.Role {
		case events.RoleSystem, events.RoleDeveloper:
			// Empty system blocks are rejected by the API.
			if content != "" {
				system = append(system, sdk.TextBlockParam{Text: content})
			}
		case events.RoleUser:
			if content != "" {
				result = append(result, sdk.NewUserMessage(sdk.NewTextBlock(content)))
			}
		case events.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				var blocks []sdk.ContentBlockParamUnion
				if content != "" {
					blocks = append(blocks, sdk.NewTextBlock(content))
				}
				for _, tc := range msg.ToolCalls {
					var input any
					json.Unmarshal([]byte(tc.Function.Arguments), &input)
					blocks = append(blocks, sdk.NewToolUseBlock(tc.ID, input, tc.Function.Name))
				}
				result = append(result, sdk.MessageParam{
					Role:    sdk.MessageParamRoleAssistant,
					Content: blocks,
				})
			} else if content != "" {
				result = append(result, sdk.NewAssistantMessage(sdk.NewTextBlock(content)))
			}
		case events.RoleTool:
			// Tool results go back as user messages with tool_result blocks.
			if msg.ToolCallID != nil {
				result = append(result, sdk.MessageParam{
					Role: sdk.MessageParamRoleUser,
					Content: []sdk.ContentBlockParamUnion{
						sdk.NewToolResultBlock(*msg.ToolCallID, content, false),
					},
				})
			}
		default:
			if content != "" {
				result = append(result, sdk.NewUserMessage(sdk.NewTextBlock(content)))
			}
		}
	}

	return result, system
}

func convertAnthropicTools(tools []events.Tool) []sdk.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	result := make([]sdk.ToolUnionParam, len(tools))
	for i, t := range tools {
		var schema map[string]any
		if len(t.Parameters) > 0 {
			json.Unmarshal(t.Parameters, &schema)
		}

		var required []string
		if reqVal, ok := schema["required"].([]any); ok {
			for _, r := range reqVal {
				if s, ok := r.(string); ok {
					required = append(required, s)
				}
			}
		}

		toolParam := sdk.ToolParam{
			Name:        t.Name,
			Description: sdk.String(t.Description),
			InputSchema: sdk.ToolInputSchemaParam{
				Properties: schema["properties"],
				Required:   required,
			},
		}
		result[i] = sdk.ToolUnionParam{OfTool: &toolParam}
	}
	return result
}

// ----- Google -----

type googleProvider struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

func (p *googleProvider) Stream(ctx context.Context, messages []events.Message, tools []events.Tool) (translate.Source, error) {
	contents := convertGoogleMessages(messages)
	config := &genai.GenerateContentConfig{}
	if p.maxTokens > 0 {
		config.MaxOutputTokens = p.maxTokens
	}
	if len(tools) > 0 {
		config.Tools = convertGoogleTools(tools)
	}

	seq := p.client.Models.GenerateContentStream(ctx, p.model, contents, config)
	return gemini.NewSource(seq), nil
}

func convertGoogleMessages(messages []events.Message) []*genai.Content {
	var contents []*genai.Content

	for _, msg := range messages {
		role := "user"
		if msg.Role == events.RoleAssistant {
			role = "model"
		}

		var parts []*genai.Part
		if msg.Content != nil && *msg.Content != "" {
			parts = append(parts, &genai.Part{Text: *msg.Content})
		}

		for _, tc := range msg.ToolCalls {
			var args map[string]any
			json.Unmarshal([]byte(tc.Function.Arguments), &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   tc.ID,
					Name: tc.Function.Name,
					Args: args,
				},
			})
		}

		if msg.Role == events.RoleTool && msg.ToolCallID != nil {
			content := ""
			if msg.Content != nil {
				content = *msg.Content
			}
			var response map[string]any
			if err := json.Unmarshal([]byte(content), &response); err != nil {
				response = map[string]any{"result": content}
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       *msg.ToolCallID,
					Name:     msg.Name,
					Response: response,
				},
			})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}

	return contents
}

func convertGoogleTools(tools []events.Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}

	funcs := make([]*genai.FunctionDeclaration, len(tools))
	for i, t := range tools {
		funcs[i] = &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  convertGoogleSchema(t.Parameters),
		}
	}

	return []*genai.Tool{{FunctionDeclarations: funcs}}
}

// convertGoogleSchema converts a JSON Schema document to the genai
// schema type. Unsupported keywords are dropped.
func convertGoogleSchema(schemaJSON json.RawMessage) *genai.Schema {
	if len(schemaJSON) == 0 {
		return nil
	}

	var schema map[string]any
	if err := json.Unmarshal(schemaJSON, &schema); err != nil {
		return nil
	}
	return convertGoogleSchemaObject(schema)
}

func convertGoogleSchemaObject(schema map[string]any) *genai.Schema {
	if schema == nil {
		return nil
	}

	result := &genai.Schema{}

	if typeVal, ok := schema["type"].(string); ok {
		switch typeVal {
		case "string":
			result.Type = genai.TypeString
		case "number":
			result.Type = genai.TypeNumber
		case "integer":
			result.Type = genai.TypeInteger
		case "boolean":
			result.Type = genai.TypeBoolean
		case "array":
			result.Type = genai.TypeArray
		case "object":
			result.Type = genai.TypeObject
		}
	}

	if desc, ok := schema["description"].(string); ok {
		result.Description = desc
	}

	if enumVal, ok := schema["enum"].([]any); ok {
		for _, e := range enumVal {
			if s, ok := e.(string); ok {
				result.Enum = append(result.Enum, s)
			}
		}
	}

	if props, ok := schema["properties"].(map[string]any); ok {
		result.Properties = make(map[string]*genai.Schema)
		for name, propSchema := range props {
			if propMap, ok := propSchema.(map[string]any); ok {
				result.Properties[name] = convertGoogleSchemaObject(propMap)
			}
		}
	}

	if required, ok := schema["required"].([]any); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				result.Required = append(result.Required, s)
			}
		}
	}

	if items, ok := schema["items"].(map[string]any); ok {
		result.Items = convertGoogleSchemaObject(items)
	}

	return result
}
