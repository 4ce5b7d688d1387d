// Package problem 生成敌人携带的算术题
//
// 生成器是当前分数的纯函数：难度随分数而不是关卡递增。
// 随机源由调用方注入，固定种子下结果可复现。
package problem

import (
	"fmt"
	"math/rand"

	"github.com/decker502/arithmetron/pkg/config"
)

// Operator 运算符
type Operator int

const (
	// Add 加法
	Add Operator = iota
	// Subtract 减法（操作数按降序排列，结果非负）
	Subtract
	// Multiply 乘法
	Multiply
)

// ParseOperator 解析配置中的运算符
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "+":
		return Add, nil
	case "-", "−":
		return Subtract, nil
	case "*", "×", "x":
		return Multiply, nil
	default:
		return 0, fmt.Errorf("unknown operator %q", s)
	}
}

// Symbol 返回运算符的显示符号
func (o Operator) Symbol() string {
	switch o {
	case Add:
		return "+"
	case Subtract:
		return "-"
	case Multiply:
		return "×"
	default:
		return "?"
	}
}

// String 实现 fmt.Stringer
func (o Operator) String() string {
	return o.Symbol()
}

// Apply 计算 a op b
func (o Operator) Apply(a, b int) int {
	switch o {
	case Subtract:
		return a - b
	case Multiply:
		return a * b
	default:
		return a + b
	}
}

// Problem 一道算术题
type Problem struct {
	Op     Operator
	A      int
	B      int
	Answer int
	Text   string // 如 "3+4"、"12-5"、"6×7"
}

// tier 解析后的难度档位
type tier struct {
	maxScore   int
	operators  []Operator
	minOperand int
	maxOperand int
}

// Generator 按分数档位生成题目
type Generator struct {
	tiers []tier
}

// NewGenerator 根据配置的档位创建生成器
func NewGenerator(tiers []config.ProblemTier) (*Generator, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("problem tiers cannot be empty")
	}

	parsed := make([]tier, 0, len(tiers))
	for i, t := range tiers {
		if len(t.Operators) == 0 {
			return nil, fmt.Errorf("tier %d: operators cannot be empty", i)
		}
		if t.MinOperand > t.MaxOperand {
			return nil, fmt.Errorf("tier %d: minOperand %d > maxOperand %d", i, t.MinOperand, t.MaxOperand)
		}
		ops := make([]Operator, 0, len(t.Operators))
		for _, s := range t.Operators {
			op, err := ParseOperator(s)
			if err != nil {
				return nil, fmt.Errorf("tier %d: %w", i, err)
			}
			ops = append(ops, op)
		}
		parsed = append(parsed, tier{
			maxScore:   t.MaxScore,
			operators:  ops,
			minOperand: t.MinOperand,
			maxOperand: t.MaxOperand,
		})
	}
	return &Generator{tiers: parsed}, nil
}

// DefaultGenerator 使用内置档位的生成器
// ≤100 只有加法 1..10；≤200 加减法 1..20；>200 加减乘 2..12
func DefaultGenerator() *Generator {
	g, err := NewGenerator(config.DefaultGameConfig().Problems)
	if err != nil {
		panic(fmt.Sprintf("default problem tiers are invalid: %v", err))
	}
	return g
}

// tierFor 返回分数对应的档位，最后一档没有上限
func (g *Generator) tierFor(score int) tier {
	last := len(g.tiers) - 1
	for i, t := range g.tiers {
		if i == last || score <= t.maxScore {
			return t
		}
	}
	return g.tiers[last]
}

// Generate 生成一道题
//
// 参数:
//   - score: 当前分数，决定难度档位
//   - rng: 随机源
//
// 返回:
//   - Problem: 运算符在档位内均匀选择，操作数在档位范围内均匀选择
func (g *Generator) Generate(score int, rng *rand.Rand) Problem {
	t := g.tierFor(score)

	op := t.operators[rng.Intn(len(t.operators))]
	a := t.minOperand + rng.Intn(t.maxOperand-t.minOperand+1)
	b := t.minOperand + rng.Intn(t.maxOperand-t.minOperand+1)

	if op == Subtract && b > a {
		a, b = b, a
	}

	return Problem{
		Op:     op,
		A:      a,
		B:      b,
		Answer: op.Apply(a, b),
		Text:   fmt.Sprintf("%d%s%d", a, op.Symbol(), b),
	}
}
