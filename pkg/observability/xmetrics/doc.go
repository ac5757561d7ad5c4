// Package xmetrics 提供统一的可观测性接口（metrics + tracing）。
//
// xmetrics 仅定义最小化接口：Observer/Span/Attr，
// 调用方只依赖接口；默认实现基于 OpenTelemetry。
//
// # 使用示例
//
//	obs, _ := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(mp))
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "bench",
//		Operation: "replay",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//
// # 指标命名
//
//   - rangekit.operation.total
//   - rangekit.operation.duration
//
// 统一属性：component / operation / status，外加调用方通过
// SpanOptions.MetricAttrs 声明的低基数维度（bench 的 pass、xlimit 的 store）。
// 对 Redis 等外部存储的调用使用 KindClient。
package xmetrics
