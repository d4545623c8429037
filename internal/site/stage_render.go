package site

import (
	"context"
)

// stageRenderPages renders the narrative manual pages through the configured
// renderer and folds the page counts into the report and metrics.
func stageRenderPages(ctx context.Context, bs *BuildState) error {
	b := bs.Builder

	sum, err := b.renderer.Render(ctx, b.outDir)
	bs.Report.RenderedPages = sum.Pages
	bs.Report.SkippedPages = sum.Skipped
	bs.Report.StaticAssets = sum.Assets
	b.recorder.AddPagesRendered(sum.Pages)
	b.recorder.AddPagesSkipped(sum.Skipped)
	if err != nil {
		return classifyToolError(StageRenderPages, ErrRender, err)
	}
	return nil
}
