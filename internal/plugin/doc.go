// Package plugin 维护可用插件目录，并为每个服务实例加载启用的插件。
//
// 插件作者需要：
//  1. 在本包或子包中编写 Definition，Register 回调接收 Host 并向 Fiber app 注册中间件/端点；
//  2. 在 init() 中调用 MustRegister 将 Definition 加入全局目录；
//  3. 通过 Priority 控制中间件顺序，数值越小越先注册。
//
// 目录是进程级的只读清单；Manager 则在 server.New 中为每个实例创建一次。
package plugin
