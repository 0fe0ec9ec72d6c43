// Package agent implements the reasoning agents of the content engine and the
// two orchestrators that coordinate them.
//
// BaseAgent is the shared substrate: identity, system prompt assembly, tool
// registry, model invocation and best-effort JSON extraction. Specialized
// agents embed it:
//
//   - generation side: ResearchAgent, WriterAgent, ComplianceAgent, CulturalAgent
//   - analysis side: VisualAnalysisAgent, TextAnalysisAgent, ComplianceAgent
//     (shared), RiskAssessmentAgent
//
// OrchestratorAgent drives the generation pipeline (plan, research, write,
// bounded revision loop over compliance and cultural checks, synthesis);
// AnalysisOrchestratorAgent drives the analysis pipeline (local plan,
// concurrent visual and text stages, compliance, risk, synthesis).
//
// Failure isolation is the central contract: a collaborator failure inside a
// specialized agent degrades to a structured result for that stage only. The
// orchestrators return an error solely for their own invariant violations,
// never for a sub-agent's failure.
package agent
