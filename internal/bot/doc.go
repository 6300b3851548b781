// Package bot реализует бота — независимую единицу исполнения,
// обрабатывающую заказы из общей PendingQueue.
//
// Бот в цикле:
//   - Берёт следующий заказ по приоритету (блокирующее взятие с коротким
//     таймаутом, чтобы сигнал остановки проверялся и в простое)
//   - Помечает заказ PROCESSING и "готовит" его фиксированное время,
//     разбитое на короткие тики — остановка наблюдается с ограниченной
//     задержкой, а не только на границе всей длительности
//   - По завершении помечает заказ COMPLETE и вызывает callback
//     (паника в callback гасится и логируется, цикл продолжается)
//
// Гарантия сохранности: каким бы путём ни завершился цикл бота
// (остановка, паника, отмена в процессе обработки), удерживаемый
// незавершённый заказ возвращается в очередь до того, как бот считается
// полностью остановленным. Возврат выполняется отложенной зачисткой на
// всех путях выхода, а не только на ожидаемом пути отмены.
//
// STOPPED — финальное состояние и означает только "новых заказов бот не
// возьмёт": остановка могла прийти сразу после естественного завершения
// последнего заказа, тогда бот остановится без заказа на руках.
package bot
